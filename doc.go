// Package dataset contains the scan-execution core of the SkyhookDM columnar
// dataset layer. This root package defines the contracts shared between the
// scanner and the storage-specific Fragment implementations which feed it, and
// is an excellent overview of the layer's key concepts.
package dataset
