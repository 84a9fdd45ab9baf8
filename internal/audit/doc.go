// Package audit records an optional activity trail of helm-secrets runs.
//
// The trail is enabled by pointing HELM_SECRETS_AUDIT_LOG at a file. Each
// operation (enc, dec, view, edit, clean and the helm wrappers) appends one
// JSON object per line:
//
//	{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"upgrade","files":["secrets.yaml"],"command":["helm","upgrade","app","."],"exit_code":0}
//
// # Failure Handling
//
// Recording is best-effort. A trail that cannot be written produces a
// warning and the operation carries on.
//
// # Reading Logs
//
// ReadEntries parses a trail back. Malformed lines, such as a partial write
// from a killed process, are skipped.
package audit
