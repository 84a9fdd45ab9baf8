package grammar

// upgradeHelp is trimmed `helm upgrade --help` output from helm v3.14.
const upgradeHelp = `
This command upgrades a release to a new version of a chart.

Usage:
  helm upgrade [RELEASE] [CHART] [flags]

Flags:
      --atomic                                     if set, upgrade process rolls back changes made in case of failed upgrade.
      --ca-file string                             verify certificates of HTTPS-enabled servers using this CA bundle
      --dry-run string[="client"]                  simulate an install. If --dry-run is set with no option being specified or as '--dry-run=client', it will not attempt cluster connections.
  -h, --help                                       help for upgrade
  -i, --install                                    if a release by this name doesn't already exist, run an install
  -o, --output format                              prints the output in the specified format. Allowed values: table, json, yaml (default table)
      --set stringArray                            set values on the command line (can specify multiple or separate values with commas: key1=val1,key2=val2)
      --timeout duration                           time to wait for any individual Kubernetes operation (like Jobs for hooks) (default 5m0s)
  -f, --values strings                             specify values in a YAML file or a URL (can specify multiple)
      --wait                                       if set, will wait until all Pods, PVCs, Services, and minimum number of Pods of a Deployment, StatefulSet, or ReplicaSet are in a ready state before marking the release as successful. It will wait for as long as --timeout

Global Flags:
      --debug                           enable verbose output
      --kube-context string             name of the kubeconfig context to use
  -n, --namespace string                namespace scope for this request
`

var upgradeFlags = []FlagSpec{
	{Long: "atomic"},
	{Long: "ca-file", TakesValue: true},
	{Long: "dry-run", TakesValue: true, OptionalValue: true},
	{Short: "h", Long: "help"},
	{Short: "i", Long: "install"},
	{Short: "o", Long: "output", TakesValue: true},
	{Long: "set", TakesValue: true},
	{Long: "timeout", TakesValue: true},
	{Short: "f", Long: "values", TakesValue: true},
	{Long: "wait"},
}
