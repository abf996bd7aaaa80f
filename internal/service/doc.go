// Package service implements the KanuControl operations the presentation
// layer works with.
//
// # Club
//
// Club wraps the store and the live query hub. It offers save and delete per
// entity, the explicit person status change, ordered live queries and the
// membership roster export.
//
// Every committed write reaches the hub through the store's commit hook, so
// a subscription stays current without being re-issued.
package service
