// Package collection provides an HTTP client for a remote books collection.
//
// # Overview
//
// The remote side is an opaque REST collection (crudcrud style): one base URL
// holding JSON documents, addressed by a server-assigned "_id". The client
// maps the five collection verbs onto single HTTP requests:
//
//   - GET    {base}       List
//   - GET    {base}/{id}  Get
//   - POST   {base}       Create
//   - PUT    {base}/{id}  Update
//   - DELETE {base}/{id}  Delete
//
// # Error Handling
//
// Every failure is reported as a *RemoteError carrying the operation, the
// HTTP status when one was received, and the request id sent in the
// X-Request-Id header. There are no retries and no backoff: the first failure
// is returned to the caller.
//
//	rec, err := client.Get(ctx, id)
//	if errors.Is(err, collection.ErrNotFound) {
//		// 404
//	}
//	var remote *collection.RemoteError
//	if errors.As(err, &remote) {
//		log.Printf("%s failed (request %s)", remote.Op, remote.RequestID)
//	}
//
// # Identifiers
//
// Records may carry both "_id" and "id". RawRecord.Identifier prefers "_id".
// Update always returns a record stamped with the requested id because some
// backends answer a PUT with an empty body.
package collection
