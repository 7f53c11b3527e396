// Package ports defines the interfaces between the conversation engine and
// its collaborators: session persistence, distributed locking, the operator
// notification sink and outbound message delivery.
package ports
