// Package batch indexes the records of one gate run.
//
// The index is built serially before any rule runs and is read-only
// afterwards. It answers the cross-record questions the rules ask:
// does (tenant, code) exist, which occurrence of a key came first, and
// does a tenant have any code under a given dotted prefix.
package batch
