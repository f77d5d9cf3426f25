// Package docserver is a small read-only stand-in for the Firestore REST
// runQuery endpoint. It serves a local card file so the viewer's remote path
// can be exercised without a cloud project.
package docserver
