// Package subscription implements the newsletter subscription workflow.
//
// A request is handled in one pass: decode the JSON body, validate the
// email, check whether it is already stored, and insert it if not. Every
// path ends in a Result carrying one Outcome; nothing is retried and no
// state survives between calls.
//
// The service layer contains pure business logic and depends on the Store
// interface defined in store.go. It never imports net/http or a storage
// client directly.
package subscription
