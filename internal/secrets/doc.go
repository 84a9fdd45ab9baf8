// Package secrets knows which files helm-secrets treats as secrets and what
// state they are in.
//
// # Secrets Files
//
// A secrets file is a YAML or JSON document whose base name matches
// secrets(.<anything>)*.yaml or secrets(.<anything>)*.json:
//
//	secrets.yaml            yes
//	secrets.prod.json       yes
//	values.yaml             no
//	secrets.yaml.dec        no (already a decrypted sibling)
//
// Its decrypted sibling lives next to it with the configured suffix appended
// (default .dec): secrets.yaml -> secrets.yaml.dec.
//
// # Encryption State
//
// IsEncrypted looks for the metadata block sops adds to every file it
// encrypts: a top-level "sops" key holding a "version". Documents that do not
// decode as YAML/JSON are scanned textually for the same marker.
package secrets
