package openclaw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wipal/openfang/internal/domain"
)

const (
	skipDisabled    = "disabled in source config"
	skipIMessage    = "macOS-only channel; requires manual setup on the target Mac"
	skipBlueBubbles = "No OpenFang adapter available; consider using the iMessage channel instead"
)

// convertModernChannels walks the typed channel configs in a fixed order and
// the unknown catch-all in sorted key order, so every run yields the same
// channel sequence.
func convertModernChannels(ch *rawChannels) []domain.ChannelSpec {
	var specs []domain.ChannelSpec
	add := func(spec domain.ChannelSpec) {
		specs = append(specs, spec)
	}

	if tg := ch.Telegram; tg != nil {
		if !enabled(tg.Enabled) {
			add(skipSpec("telegram", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:        "telegram",
				Enabled:     true,
				DMPolicy:    tg.DMPolicy,
				GroupPolicy: tg.GroupPolicy,
				AllowFrom:   tg.AllowFrom,
			}
			if tg.BotToken != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "TELEGRAM_BOT_TOKEN", Value: tg.BotToken})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: "TELEGRAM_BOT_TOKEN"})
			if len(tg.AllowFrom) > 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "allowed_users", Value: tg.AllowFrom})
			}
			add(spec)
		}
	}

	if dc := ch.Discord; dc != nil {
		if !enabled(dc.Enabled) {
			add(skipSpec("discord", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:        "discord",
				Enabled:     true,
				DMPolicy:    dc.DMPolicy,
				GroupPolicy: dc.GroupPolicy,
				AllowFrom:   dc.AllowFrom,
			}
			if dc.Token != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "DISCORD_BOT_TOKEN", Value: dc.Token})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: "DISCORD_BOT_TOKEN"})
			add(spec)
		}
	}

	if sl := ch.Slack; sl != nil {
		if !enabled(sl.Enabled) {
			add(skipSpec("slack", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:        "slack",
				Enabled:     true,
				DMPolicy:    sl.DMPolicy,
				GroupPolicy: sl.GroupPolicy,
				AllowFrom:   sl.AllowFrom,
			}
			if sl.BotToken != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "SLACK_BOT_TOKEN", Value: sl.BotToken})
			}
			if sl.AppToken != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "SLACK_APP_TOKEN", Value: sl.AppToken})
			}
			spec.Fields = append(spec.Fields,
				domain.Field{Key: "bot_token_env", Value: "SLACK_BOT_TOKEN"},
				domain.Field{Key: "app_token_env", Value: "SLACK_APP_TOKEN"},
			)
			add(spec)
		}
	}

	if wa := ch.WhatsApp; wa != nil {
		if !enabled(wa.Enabled) {
			add(skipSpec("whatsapp", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:        "whatsapp",
				Enabled:     true,
				DMPolicy:    wa.DMPolicy,
				GroupPolicy: wa.GroupPolicy,
				AllowFrom:   wa.AllowFrom,
			}
			if wa.AuthDir != "" {
				if info, err := os.Stat(wa.AuthDir); err == nil && info.IsDir() {
					spec.Bundles = append(spec.Bundles, domain.CredentialBundle{
						Name:    "whatsapp/credentials",
						Source:  wa.AuthDir,
						DestRel: filepath.Join("credentials", "whatsapp"),
						IsDir:   true,
						Warning: "WhatsApp Baileys credentials copied; you may need to re-authenticate",
					})
				}
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "access_token_env", Value: "WHATSAPP_ACCESS_TOKEN"})
			if len(wa.AllowFrom) > 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "allowed_users", Value: wa.AllowFrom})
			}
			add(spec)
		}
	}

	if sig := ch.Signal; sig != nil {
		if !enabled(sig.Enabled) {
			add(skipSpec("signal", skipDisabled))
		} else {
			apiURL := sig.HTTPURL
			if apiURL == "" {
				host := sig.HTTPHost
				if host == "" {
					host = "localhost"
				}
				port := sig.HTTPPort
				if port == 0 {
					port = 8080
				}
				apiURL = fmt.Sprintf("http://%s:%d", host, port)
			}
			spec := domain.ChannelSpec{
				Kind:      "signal",
				Enabled:   true,
				DMPolicy:  sig.DMPolicy,
				AllowFrom: sig.AllowFrom,
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "api_url", Value: apiURL})
			if sig.Account != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "phone_number", Value: sig.Account})
			}
			add(spec)
		}
	}

	if mx := ch.Matrix; mx != nil {
		if !enabled(mx.Enabled) {
			add(skipSpec("matrix", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:      "matrix",
				Enabled:   true,
				DMPolicy:  mx.DMPolicy,
				AllowFrom: mx.AllowFrom,
			}
			if mx.AccessToken != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "MATRIX_ACCESS_TOKEN", Value: mx.AccessToken})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "access_token_env", Value: "MATRIX_ACCESS_TOKEN"})
			if mx.Homeserver != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "homeserver_url", Value: mx.Homeserver})
			}
			if mx.UserID != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "user_id", Value: mx.UserID})
			}
			if len(mx.Rooms) > 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "rooms", Value: mx.Rooms})
			}
			add(spec)
		}
	}

	if gc := ch.GoogleChat; gc != nil {
		if !enabled(gc.Enabled) {
			add(skipSpec("google_chat", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:     "google_chat",
				Enabled:  true,
				DMPolicy: gc.DMPolicy,
			}
			if gc.ServiceAccountFile != "" {
				if _, err := os.Stat(gc.ServiceAccountFile); err == nil {
					spec.Bundles = append(spec.Bundles, domain.CredentialBundle{
						Name:    "google_chat/service_account",
						Source:  gc.ServiceAccountFile,
						DestRel: filepath.Join("credentials", "google_chat_sa.json"),
					})
				}
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "service_account_env", Value: "GOOGLE_CHAT_SA_FILE"})
			add(spec)
		}
	}

	if tm := ch.Teams; tm != nil {
		if !enabled(tm.Enabled) {
			add(skipSpec("teams", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:      "teams",
				Enabled:   true,
				DMPolicy:  tm.DMPolicy,
				AllowFrom: tm.AllowFrom,
			}
			if tm.AppPassword != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "TEAMS_APP_PASSWORD", Value: tm.AppPassword})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "app_password_env", Value: "TEAMS_APP_PASSWORD"})
			if tm.AppID != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "app_id", Value: tm.AppID})
			}
			if tm.TenantID != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "tenant_id", Value: tm.TenantID})
			}
			add(spec)
		}
	}

	if irc := ch.IRC; irc != nil {
		if !enabled(irc.Enabled) {
			add(skipSpec("irc", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:      "irc",
				Enabled:   true,
				DMPolicy:  irc.DMPolicy,
				AllowFrom: irc.AllowFrom,
			}
			if irc.Password != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "IRC_PASSWORD", Value: irc.Password})
			}
			if irc.Host != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "server", Value: irc.Host})
			}
			if irc.Port != 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "port", Value: int64(irc.Port)})
			}
			if irc.Nick != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "nickname", Value: irc.Nick})
			}
			if irc.TLS != nil {
				spec.Fields = append(spec.Fields, domain.Field{Key: "use_tls", Value: *irc.TLS})
			}
			if irc.Password != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "password_env", Value: "IRC_PASSWORD"})
			}
			if len(irc.Channels) > 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "channels", Value: irc.Channels})
			}
			add(spec)
		}
	}

	if mm := ch.Mattermost; mm != nil {
		if !enabled(mm.Enabled) {
			add(skipSpec("mattermost", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:      "mattermost",
				Enabled:   true,
				DMPolicy:  mm.DMPolicy,
				AllowFrom: mm.AllowFrom,
			}
			if mm.BotToken != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "MATTERMOST_TOKEN", Value: mm.BotToken})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: "MATTERMOST_TOKEN"})
			if mm.BaseURL != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "server_url", Value: mm.BaseURL})
			}
			add(spec)
		}
	}

	if fs := ch.Feishu; fs != nil {
		if !enabled(fs.Enabled) {
			add(skipSpec("feishu", skipDisabled))
		} else {
			spec := domain.ChannelSpec{
				Kind:     "feishu",
				Enabled:  true,
				DMPolicy: fs.DMPolicy,
			}
			if fs.AppSecret != "" {
				spec.Secrets = append(spec.Secrets, domain.SecretRecord{Key: "FEISHU_APP_SECRET", Value: fs.AppSecret})
			}
			spec.Fields = append(spec.Fields, domain.Field{Key: "app_secret_env", Value: "FEISHU_APP_SECRET"})
			if fs.AppID != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "app_id", Value: fs.AppID})
			}
			if fs.Domain != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "domain", Value: fs.Domain})
			}
			add(spec)
		}
	}

	if ch.IMessage != nil {
		add(skipSpec("imessage", skipIMessage))
	}
	if ch.BlueBubbles != nil {
		add(skipSpec("bluebubbles", skipBlueBubbles))
	}

	for _, key := range ch.otherKeys() {
		spec := skipSpec(key, fmt.Sprintf("Unknown channel '%s'; not mapped to any OpenFang adapter", key))
		var extra map[string]any
		if err := json.Unmarshal(ch.Other[key], &extra); err == nil {
			spec.Extra = extra
		}
		add(spec)
	}

	return specs
}

func skipSpec(kind, reason string) domain.ChannelSpec {
	return domain.ChannelSpec{Kind: kind, SkipReason: reason}
}
