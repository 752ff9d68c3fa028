// Package registry manages the pool of remotely provisioned agents: it
// resolves each role to a remote agent id by checking persisted ids, then
// discovering existing remote agents by name, then provisioning missing ones.
// Resolved ids are cached in memory and persisted to disk so restarts reuse
// agents instead of re-creating them.
package registry
