// Package respserver serves the key-value store over TCP using the resp codec.
//
// Each accepted connection runs its own loop:
//
//	read one request -> dispatch -> write one reply -> flush
//
// so replies on a connection always come back in request order. Separate
// connections run concurrently and share only the store.
//
// Supported commands:
//
//	GET key              bulk string or null
//	SET key value        integer 1
//	DELETE key           integer 1 if removed, else 0
//	FLUSH                integer count of removed keys
//	MGET key [key ...]   array of bulk strings or nulls
//	MSET key value [...] integer count of pairs set
//
// Command names are matched case-insensitively. A malformed byte stream ends
// the connection after one best-effort error reply; an unknown command or a
// wrong argument count is answered with an error and the connection continues.
package respserver
