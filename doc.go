// Package diskdb provides a client for the DiskDB key-value store's textual
// line protocol.
//
// The client speaks a newline-delimited request/response protocol over a
// single persistent TCP connection. Commands cover strings, lists, sets,
// hashes, sorted sets, JSON documents, and streams.
//
// Basic usage:
//
//	client, err := diskdb.New(
//		diskdb.WithHost("localhost"),
//		diskdb.WithPort(6380),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Set("greeting", "hello"); err != nil {
//		log.Fatal(err)
//	}
//	value, ok, err := client.Get("greeting")
//
// # Multi-value replies and the framing window
//
// The wire format carries no length prefix or frame terminator for
// variable-cardinality replies (ranges, member enumerations, hash dumps,
// stream entries). The client detects the end of such a reply by shrinking
// the read deadline to a short framing window (default 500ms) and treating
// deadline expiry as the terminator. This is a compatibility heuristic, not
// a guaranteed frame boundary: a server pausing longer than the window
// mid-reply truncates the result. WithFramingWindow trades latency against
// tolerance for slow servers.
//
// # Errors
//
// Failures are returned as distinct, inspectable kinds so callers can choose
// a recovery policy: *ConnectionError (reconnect), ErrTimeout (retry),
// *CommandError and *TypeMismatchError (data-level failures), and
// *protocol.ProtocolError (malformed reply shape). The client never retries
// internally and never logs on the caller's behalf.
//
// # Concurrency
//
// A Client holds one connection and serializes operations with an internal
// mutex; replies are strictly FIFO with no pipelining. Use one Client per
// concurrent stream of operations.
package diskdb
