package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeCLI    = "70000"
	CodeChain  = "71000"
	CodeRender = "72000"
	CodeConfig = "79000"
)

const (
	DescCLI    = "CLI/argument validation error"
	DescChain  = "Chain description error"
	DescRender = "Report rendering error"
	DescConfig = "Configuration error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeChain, Description: DescChain},
	{Code: CodeRender, Description: DescRender},
	{Code: CodeConfig, Description: DescConfig},
}

var registryMap = map[string]string{
	CodeCLI:    DescCLI,
	CodeChain:  DescChain,
	CodeRender: DescRender,
	CodeConfig: DescConfig,
}

// ErrorRegistry returns the error registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
