// Package netmanager wraps the NetworkManager D-Bus service.
//
// It exposes two things to the rest of the application: point-in-time
// snapshots of every known connection (Snapshot) and a stream of coalesced
// change notifications (Events). Consumers never talk to D-Bus themselves;
// they re-read the snapshot whenever an event arrives.
//
// The client tolerates the service being transiently unavailable: snapshots
// degrade to an empty set, a backoff loop probes for the service, and normal
// operation resumes once it is reachable again. A permanently absent service
// is reported the same way and never crashes the process.
package netmanager
