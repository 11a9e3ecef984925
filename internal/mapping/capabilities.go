package mapping

import "github.com/wipal/openfang/internal/domain"

// DeriveCapabilities computes the coarse permission grants implied by a
// resolved tool list. Grants only accumulate: a later, narrower tool never
// revokes what an earlier one opened.
func DeriveCapabilities(tools []string) domain.Capabilities {
	var caps domain.Capabilities
	for _, tool := range tools {
		switch tool {
		case "*":
			caps.Shell = []string{"*"}
			caps.Network = []string{"*"}
			caps.AgentMessage = []string{"*"}
			caps.AgentSpawn = true
		case "shell_exec":
			if caps.Shell == nil {
				caps.Shell = []string{"*"}
			}
		case "web_fetch", "web_search", "browser_navigate":
			if caps.Network == nil {
				caps.Network = []string{"*"}
			}
		case "agent_send", "agent_list":
			if caps.AgentMessage == nil {
				caps.AgentMessage = []string{"*"}
			}
			caps.AgentSpawn = true
		}
	}
	return caps
}
