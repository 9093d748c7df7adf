// Bizgate is the quality gate for biz_metadata dictionary snapshots.
//
// It loads dictionary rows from CSV files, Markdown tables or a
// biz_metadata table and runs the import or publish rule set over them:
//   - Required fields, enumerations and code naming
//   - Type expression syntax and scope
//   - TypeRef resolution (missing targets, cycles, depth)
//   - Unit and identifier conventions, parent hierarchy
//   - Publish-only completeness of object and array types
//
// Usage:
//
//	# Run the import gate over a directory
//	bizgate check -i dict/
//
//	# Run the publish gate and keep a JSON report
//	bizgate check -i dict/ --mode publish -o report.json
//
//	# Check a single type expression
//	bizgate parse 'json<array:ref:company.base.name>'
//
//	# List the rules each gate runs
//	bizgate rules --mode publish
//
//	# Re-run on every change and every hour
//	bizgate watch -i dict/ --schedule '@hourly' --metrics-addr :9108
//
// Exit codes: 0 when the gate passed, 2 when it failed, 1 on any other error.
package main

func main() {
	Execute()
}
