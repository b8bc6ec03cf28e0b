// Package storage provides the sinks a fund is persisted to. Each sink
// stores the fund as a single text blob: a local file, a row in a SQLite
// database, a cell in a Google spreadsheet, or memory for tests.
package storage
