// Package secrets recognizes secret material inside configuration documents
// and manages the flat store that holds extracted values.
package secrets

import "regexp"

// Pattern binds a known secret format to its symbolic name. Extending
// recognition to a new vendor means adding a table entry.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// Patterns is the fixed recognition table, applied in order. More specific
// prefixes come before the generic formats they would otherwise shadow.
var Patterns = []Pattern{
	{Name: "ANTHROPIC_API_KEY", Re: regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{24,}`)},
	{Name: "OPENAI_API_KEY", Re: regexp.MustCompile(`sk-proj-[A-Za-z0-9_-]{24,}|sk-[A-Za-z0-9]{48}`)},
	{Name: "GITHUB_FINE_GRAINED_TOKEN", Re: regexp.MustCompile(`github_pat_[A-Za-z0-9_]{36,}`)},
	{Name: "GITHUB_TOKEN", Re: regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)},
	{Name: "SLACK_BOT_TOKEN", Re: regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,}`)},
	{Name: "STRIPE_SECRET_KEY", Re: regexp.MustCompile(`sk_live_[A-Za-z0-9]{24,}`)},
	{Name: "AWS_ACCESS_KEY_ID", Re: regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{Name: "NOTION_API_KEY", Re: regexp.MustCompile(`ntn_[A-Za-z0-9]{30,}`)},
	{Name: "BRAVE_API_KEY", Re: regexp.MustCompile(`BSA[A-Za-z0-9]{27}`)},
}

// EnvAllowList names environment variables whose values are always treated
// as secrets during extraction, whether or not a pattern matches them.
var EnvAllowList = []string{
	"ANTHROPIC_API_KEY",
	"OPENAI_API_KEY",
	"GITHUB_TOKEN",
	"GITHUB_PERSONAL_ACCESS_TOKEN",
	"GITLAB_TOKEN",
	"SLACK_BOT_TOKEN",
	"SLACK_APP_TOKEN",
	"BRAVE_API_KEY",
	"NOTION_API_KEY",
	"POSTGRES_CONNECTION_STRING",
	"DATABASE_URL",
	"AWS_SECRET_ACCESS_KEY",
	"API_KEY",
}

var envAllowSet = func() map[string]bool {
	s := make(map[string]bool, len(EnvAllowList))
	for _, name := range EnvAllowList {
		s[name] = true
	}
	return s
}()

// IsSecretEnvVar reports whether the variable name is on the allow-list.
func IsSecretEnvVar(name string) bool { return envAllowSet[name] }

// placeholderRe matches a full symbolic token like ${GITHUB_TOKEN}.
var placeholderRe = regexp.MustCompile(`^\$\{[A-Z][A-Z0-9_]*\}$`)

// IsPlaceholder reports whether the value is already a symbolic token and
// therefore must not be re-extracted.
func IsPlaceholder(value string) bool { return placeholderRe.MatchString(value) }

// PlaceholderRef matches embedded ${NAME} references inside larger strings.
var PlaceholderRef = regexp.MustCompile(`\$\{([A-Z][A-Z0-9_]*)\}`)

// Placeholder formats the symbolic token for a secret name.
func Placeholder(name string) string { return "${" + name + "}" }
