// Package ports defines the interfaces the execution engine consumes.
//
// Following the hexagonal style, every interface here is declared by the
// consumer: the runtime depends on these contracts, and the adapters
// (memory, redis, queue) implement them. External collaborators such as the
// web API, the editor and the credential vault only ever appear as a port.
package ports
