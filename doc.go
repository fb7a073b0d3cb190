// Package reckon contains the core components of Reckon, a framework for computing
// dataset-wide statistics ("analyzers") over partitioned streams of value batches.
// This root package defines types which are employed during the regular use of the
// framework, as well as in the extension of the framework, and is an excellent
// overview of Reckon's key concepts.
package reckon
