// Package jsonl parses JSON Lines DataSources. This parser uses https://github.com/tidwall/gjson to process data, and supports Schema column names formatted as gjson paths.
// Column names which are literal top-level keys of an object take precedence over paths.
// When no Schema is supplied, columns are inferred from the top-level keys of each object, in the order they are first seen.
package jsonl
