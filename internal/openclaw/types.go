package openclaw

import (
	"encoding/json"
	"sort"
)

// Raw structs mirroring the modern openclaw.json layout. Keys are camelCase
// in the source file. All fields are optional; absent sections decode to
// zero values.

type rawRoot struct {
	Auth     *rawAuth        `json:"auth"`
	Models   *rawModels      `json:"models"`
	Agents   *rawAgents      `json:"agents"`
	Tools    *rawRootTools   `json:"tools"`
	Channels *rawChannels    `json:"channels"`
	Cron     json.RawMessage `json:"cron"`
	Hooks    json.RawMessage `json:"hooks"`
	Skills   *rawSkills      `json:"skills"`
	Memory   json.RawMessage `json:"memory"`
	Session  json.RawMessage `json:"session"`
}

type rawAuth struct {
	Profiles json.RawMessage `json:"profiles"`
	Order    json.RawMessage `json:"order"`
}

type rawModels struct {
	Providers map[string]json.RawMessage `json:"providers"`
}

type rawRootTools struct {
	Profile string   `json:"profile"`
	Allow   []string `json:"allow"`
	Deny    []string `json:"deny"`
}

type rawAgents struct {
	Defaults *rawAgentDefaults `json:"defaults"`
	List     []rawAgentEntry   `json:"list"`
}

type rawAgentDefaults struct {
	Model     *rawModel      `json:"model"`
	Workspace string         `json:"workspace"`
	Tools     *rawAgentTools `json:"tools"`
	Identity  string         `json:"identity"`
}

type rawAgentEntry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Model     *rawModel      `json:"model"`
	Tools     *rawAgentTools `json:"tools"`
	Workspace string         `json:"workspace"`
	Skills    []string       `json:"skills"`
	Identity  string         `json:"identity"`
}

type rawAgentTools struct {
	Profile   string   `json:"profile"`
	Allow     []string `json:"allow"`
	Deny      []string `json:"deny"`
	AlsoAllow []string `json:"alsoAllow"`
}

// rawModel is either a plain "provider/model" string or a detailed object
// with a primary reference and fallbacks.
type rawModel struct {
	Primary   string
	Fallbacks []string
}

func (m *rawModel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Primary = s
		m.Fallbacks = nil
		return nil
	}
	var detailed struct {
		Primary   string   `json:"primary"`
		Fallbacks []string `json:"fallbacks"`
	}
	if err := json.Unmarshal(data, &detailed); err != nil {
		return err
	}
	m.Primary = detailed.Primary
	m.Fallbacks = detailed.Fallbacks
	return nil
}

type rawSkills struct {
	Entries map[string]json.RawMessage `json:"entries"`
	Load    json.RawMessage            `json:"load"`
}

// rawChannels holds the typed channel configs plus a catch-all for unknown
// kinds. Google Chat and Teams historically appeared under several key
// spellings, so decoding goes through a raw map instead of struct tags.
type rawChannels struct {
	Telegram    *rawTelegram    `json:"-"`
	Discord     *rawDiscord     `json:"-"`
	Slack       *rawSlack       `json:"-"`
	WhatsApp    *rawWhatsApp    `json:"-"`
	Signal      *rawSignal      `json:"-"`
	Matrix      *rawMatrix      `json:"-"`
	GoogleChat  *rawGoogleChat  `json:"-"`
	Teams       *rawTeams       `json:"-"`
	IRC         *rawIRC         `json:"-"`
	Mattermost  *rawMattermost  `json:"-"`
	Feishu      *rawFeishu      `json:"-"`
	IMessage    *rawIMessage    `json:"-"`
	BlueBubbles *rawBlueBubbles `json:"-"`

	// Other maps unrecognized channel keys to their raw config.
	Other map[string]json.RawMessage `json:"-"`
}

func (c *rawChannels) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, raw := range m {
		var err error
		switch key {
		case "telegram":
			err = json.Unmarshal(raw, &c.Telegram)
		case "discord":
			err = json.Unmarshal(raw, &c.Discord)
		case "slack":
			err = json.Unmarshal(raw, &c.Slack)
		case "whatsapp":
			err = json.Unmarshal(raw, &c.WhatsApp)
		case "signal":
			err = json.Unmarshal(raw, &c.Signal)
		case "matrix":
			err = json.Unmarshal(raw, &c.Matrix)
		case "googleChat", "googlechat":
			err = json.Unmarshal(raw, &c.GoogleChat)
		case "teams", "msteams", "msTeams":
			err = json.Unmarshal(raw, &c.Teams)
		case "irc":
			err = json.Unmarshal(raw, &c.IRC)
		case "mattermost":
			err = json.Unmarshal(raw, &c.Mattermost)
		case "feishu":
			err = json.Unmarshal(raw, &c.Feishu)
		case "imessage":
			err = json.Unmarshal(raw, &c.IMessage)
		case "bluebubbles":
			err = json.Unmarshal(raw, &c.BlueBubbles)
		default:
			if c.Other == nil {
				c.Other = make(map[string]json.RawMessage)
			}
			c.Other[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// otherKeys returns the unrecognized channel names sorted for deterministic
// report order.
func (c *rawChannels) otherKeys() []string {
	keys := make([]string, 0, len(c.Other))
	for k := range c.Other {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type rawTelegram struct {
	BotToken    string   `json:"botToken"`
	AllowFrom   []string `json:"allowFrom"`
	GroupPolicy string   `json:"groupPolicy"`
	DMPolicy    string   `json:"dmPolicy"`
	Enabled     *bool    `json:"enabled"`
}

type rawDiscord struct {
	Token       string          `json:"token"`
	Guilds      json.RawMessage `json:"guilds"`
	DMPolicy    string          `json:"dmPolicy"`
	GroupPolicy string          `json:"groupPolicy"`
	AllowFrom   []string        `json:"allowFrom"`
	Enabled     *bool           `json:"enabled"`
}

type rawSlack struct {
	BotToken    string   `json:"botToken"`
	AppToken    string   `json:"appToken"`
	DMPolicy    string   `json:"dmPolicy"`
	GroupPolicy string   `json:"groupPolicy"`
	AllowFrom   []string `json:"allowFrom"`
	Enabled     *bool    `json:"enabled"`
}

type rawWhatsApp struct {
	AuthDir     string   `json:"authDir"`
	DMPolicy    string   `json:"dmPolicy"`
	AllowFrom   []string `json:"allowFrom"`
	GroupPolicy string   `json:"groupPolicy"`
	Enabled     *bool    `json:"enabled"`
}

type rawSignal struct {
	HTTPURL   string   `json:"httpUrl"`
	HTTPHost  string   `json:"httpHost"`
	HTTPPort  int      `json:"httpPort"`
	Account   string   `json:"account"`
	DMPolicy  string   `json:"dmPolicy"`
	AllowFrom []string `json:"allowFrom"`
	Enabled   *bool    `json:"enabled"`
}

type rawMatrix struct {
	Homeserver  string   `json:"homeserver"`
	UserID      string   `json:"userId"`
	AccessToken string   `json:"accessToken"`
	Rooms       []string `json:"rooms"`
	DMPolicy    string   `json:"dmPolicy"`
	AllowFrom   []string `json:"allowFrom"`
	Enabled     *bool    `json:"enabled"`
}

type rawGoogleChat struct {
	ServiceAccountFile string `json:"serviceAccountFile"`
	WebhookPath        string `json:"webhookPath"`
	BotUser            string `json:"botUser"`
	DMPolicy           string `json:"dmPolicy"`
	Enabled            *bool  `json:"enabled"`
}

type rawTeams struct {
	AppID       string   `json:"appId"`
	AppPassword string   `json:"appPassword"`
	TenantID    string   `json:"tenantId"`
	DMPolicy    string   `json:"dmPolicy"`
	AllowFrom   []string `json:"allowFrom"`
	Enabled     *bool    `json:"enabled"`
}

type rawIRC struct {
	Host      string   `json:"host"`
	Port      int      `json:"port"`
	TLS       *bool    `json:"tls"`
	Nick      string   `json:"nick"`
	Password  string   `json:"password"`
	Channels  []string `json:"channels"`
	DMPolicy  string   `json:"dmPolicy"`
	AllowFrom []string `json:"allowFrom"`
	Enabled   *bool    `json:"enabled"`
}

type rawMattermost struct {
	BotToken  string   `json:"botToken"`
	BaseURL   string   `json:"baseUrl"`
	DMPolicy  string   `json:"dmPolicy"`
	AllowFrom []string `json:"allowFrom"`
	Enabled   *bool    `json:"enabled"`
}

type rawFeishu struct {
	AppID     string `json:"appId"`
	AppSecret string `json:"appSecret"`
	Domain    string `json:"domain"`
	DMPolicy  string `json:"dmPolicy"`
	Enabled   *bool  `json:"enabled"`
}

type rawIMessage struct {
	CLIPath   string   `json:"cliPath"`
	DBPath    string   `json:"dbPath"`
	DMPolicy  string   `json:"dmPolicy"`
	AllowFrom []string `json:"allowFrom"`
	Enabled   *bool    `json:"enabled"`
}

type rawBlueBubbles struct {
	ServerURL string   `json:"serverUrl"`
	Password  string   `json:"password"`
	DMPolicy  string   `json:"dmPolicy"`
	AllowFrom []string `json:"allowFrom"`
	Enabled   *bool    `json:"enabled"`
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// Legacy YAML structures.

type legacyConfig struct {
	Provider    string              `yaml:"provider"`
	Model       string              `yaml:"model"`
	APIKeyEnv   string              `yaml:"api_key_env"`
	BaseURL     string              `yaml:"base_url"`
	Temperature *float64            `yaml:"temperature"`
	MaxTokens   *int                `yaml:"max_tokens"`
	Memory      *legacyMemoryConfig `yaml:"memory"`
}

type legacyMemoryConfig struct {
	DecayRate *float64 `yaml:"decay_rate"`
}

type legacyAgent struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Model        string   `yaml:"model"`
	Provider     string   `yaml:"provider"`
	SystemPrompt string   `yaml:"system_prompt"`
	Tools        []string `yaml:"tools"`
	ToolProfile  string   `yaml:"tool_profile"`
	APIKeyEnv    string   `yaml:"api_key_env"`
	BaseURL      string   `yaml:"base_url"`
	Tags         []string `yaml:"tags"`
}

type legacyChannelConfig struct {
	Type             string   `yaml:"type"`
	BotTokenEnv      string   `yaml:"bot_token_env"`
	AppTokenEnv      string   `yaml:"app_token_env"`
	PhoneNumberIDEnv string   `yaml:"phone_number_id_env"`
	AccessTokenEnv   string   `yaml:"access_token_env"`
	VerifyTokenEnv   string   `yaml:"verify_token_env"`
	WebhookPort      int      `yaml:"webhook_port"`
	AllowedUsers     []string `yaml:"allowed_users"`
	DefaultAgent     string   `yaml:"default_agent"`
}
