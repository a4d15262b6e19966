// Package flowsome contains the core components of Flowsome, a single-machine pipeline engine for tabular data.
// This root package defines types which are employed during the regular use of the framework, as
// well as in the extension of the framework, and is an excellent overview of Flowsome's key concepts.
package flowsome
