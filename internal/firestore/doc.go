// Package firestore is a minimal client for the Firestore REST runQuery
// endpoint plus the typed-value codec that maps documents to cards.
//
// Only reads are supported. A client is built from Options and refuses to
// exist without a project id and a real API key:
//
//	c, err := firestore.NewClient(firestore.Options{ProjectID: "p", APIKey: key})
//	if errors.Is(err, firestore.ErrNotConfigured) {
//		// fall back to local cards
//	}
//	docs, err := c.RunQuery(ctx, firestore.OrderedByID("cards"))
//
// Every request carries Accept and User-Agent headers and a fresh
// X-Request-Id. Status codes of 400 and above become errors that include the
// start of the response body.
//
// The codec understands stringValue, integerValue (a decimal string on the
// wire), doubleValue, booleanValue and nullValue. DecodeCard requires an id
// field; every other field is optional and defaults to its zero value.
package firestore
