// Package lab defines the domain types and collaborator interfaces for
// the 3D Lab Data Factory client: chat sessions and messages, streaming
// events, and the backend service contracts. Implementations live in the
// subpackages (api, chat, auth, recon, library, tui).
package lab
