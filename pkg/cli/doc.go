/*
Package cli provides command-line helpers for the bizgate command.

Output Formatting:

Reports render as text (colored with fatih/color when the terminal allows),
JSON, or CSV with one row per violation:

	formatter := cli.NewFormatter(cli.FormatJSON, cli.ColorAuto)
	if err := formatter.FormatTo(os.Stdout, cli.NewGateReport(res, report, failOnWarn)); err != nil {
		return err
	}

Exit Codes:

Commands return errors; main maps them with ExitCode. A failed gate is an
*ExitError with code 2, runtime failures exit 1:

	os.Exit(cli.ExitCode(err))

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
