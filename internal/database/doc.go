// Package database stores the play history and the rotation cursor in
// SQLite.
//
// Every airing (bumper or episode) is appended to the airings table tagged
// with the session ID of the process that played it. The stream_state table
// holds a single row with the position the rotation should resume from.
package database
