// Package mapping holds the static translation tables between OpenClaw and
// OpenFang vocabulary: provider names, tool names, tool profiles, channel
// policies, and the capability derivation rules. Both schema adapters call
// into this package so the two parse paths can never drift apart.
package mapping

import (
	"strings"

	"github.com/wipal/openfang/internal/domain"
)

// DefaultProvider is assumed when a model reference names no provider.
const DefaultProvider = "anthropic"

// DefaultModel is the process-wide model used when the source names none.
const DefaultModel = "claude-sonnet-4-20250514"

// providerAliases maps lowercased OpenClaw provider spellings to OpenFang
// provider names. Identity entries are listed so recognized providers are
// distinguishable from passthroughs when extending the table.
var providerAliases = map[string]string{
	"anthropic":    "anthropic",
	"claude":       "anthropic",
	"openai":       "openai",
	"gpt":          "openai",
	"groq":         "groq",
	"ollama":       "ollama",
	"openrouter":   "openrouter",
	"deepseek":     "deepseek",
	"together":     "together",
	"mistral":      "mistral",
	"fireworks":    "fireworks",
	"google":       "google",
	"gemini":       "google",
	"xai":          "xai",
	"grok":         "xai",
	"z.ai":         "zai",
	"zai":          "zai",
	"z.ai-global":  "zai-global",
	"zai-global":   "zai-global",
	"zai_global":   "zai-global",
	"cerebras":     "cerebras",
	"sambanova":    "sambanova",
}

// MapProvider normalizes an OpenClaw provider name. Unknown providers pass
// through lowercased rather than failing, so custom gateways keep working.
func MapProvider(name string) string {
	lower := strings.ToLower(name)
	if mapped, ok := providerAliases[lower]; ok {
		return mapped
	}
	return lower
}

// apiKeyEnvs maps OpenFang provider names to their conventional API key
// environment variable. Ollama needs no key and maps to "".
var apiKeyEnvs = map[string]string{
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"groq":       "GROQ_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"deepseek":   "DEEPSEEK_API_KEY",
	"together":   "TOGETHER_API_KEY",
	"mistral":    "MISTRAL_API_KEY",
	"fireworks":  "FIREWORKS_API_KEY",
	"google":     "GOOGLE_API_KEY",
	"xai":        "XAI_API_KEY",
	"zai":        "ZAI_API_KEY",
	"zai-global": "ZAI_GLOBAL_API_KEY",
	"cerebras":   "CEREBRAS_API_KEY",
	"sambanova":  "SAMBANOVA_API_KEY",
	"ollama":     "",
}

// DefaultAPIKeyEnv returns the environment variable that conventionally
// holds the provider's API key.
func DefaultAPIKeyEnv(provider string) string {
	if env, ok := apiKeyEnvs[provider]; ok {
		return env
	}
	return strings.ToUpper(strings.ReplaceAll(provider, "-", "_")) + "_API_KEY"
}

// SplitModelRef splits a model reference like "provider/name" on the first
// slash. The left segment passes through provider normalization; the right
// segment is the model id verbatim. Without a slash the whole string is the
// model id under the default provider, so "" yields an empty model id.
func SplitModelRef(ref string) domain.ModelRef {
	if i := strings.Index(ref, "/"); i >= 0 {
		return domain.ModelRef{
			Provider: MapProvider(ref[:i]),
			Model:    ref[i+1:],
		}
	}
	return domain.ModelRef{Provider: DefaultProvider, Model: ref}
}
