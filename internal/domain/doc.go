// Package domain models crowd-reported pothole data as stored in Firestore.
//
// # Data Source
//
// Pothole reports are written to the "potholes_database" Firestore collection
// by the mobile reporting app. Each document is a flat map; the service reads
// three keys and ignores everything else:
//
//	latitude   number or numeric string, WGS-84 degrees
//	longitude  number or numeric string, WGS-84 degrees
//	size       free-form severity label, e.g. " Large ", "small", "MEDIUM"
//
// # Completeness
//
// Field values are judged the way the reporting app writes them: a coordinate
// counts as present only when it is truthy. Missing keys, null, false, 0,
// 0.0, "", and empty arrays/maps/bytes are all treated as absent, and the
// document is dropped with [ErrIncomplete]. The string "0" and NaN are truthy
// and pass the check.
//
// # Coercion
//
//	Coordinates: float64 as-is, int64 widened, bool as 1/0, strings parsed
//	after trimming whitespace. Anything else is a [*FieldError].
//
//	Size: strings as-is, null as "none", numbers in their shortest decimal
//	form ("3", "2.0", "0.5"), then trimmed and lower-cased. Missing size
//	becomes "".
//
// A coercion failure is not a per-document skip: the fetcher treats it as a
// failed read of the whole collection.
package domain
