// Package wrapper runs helm with secrets values files decrypted on the fly.
//
// A wrapped command line is parsed against the flag grammar helm itself
// reports for the command (see package grammar). Every -f/--values flag
// naming a secrets file is pointed at its decrypted sibling, which is
// created for the duration of the helm run and removed afterwards,
// whether helm succeeded or not.
//
// # Reconstructed Command Line
//
// Helm receives its arguments in a canonical layout:
//
//	helm [--host $TILLER_HOST] <command> [<subcommand>] <positionals...> <options...>
//
// Options keep the order they were given in. Only the values of
// values-file flags are ever changed.
//
// # Decrypted Siblings
//
// A sibling that already exists and is newer than its secrets file is
// reused as-is and left in place. Siblings created by the run are always
// removed.
package wrapper
