package domain

// RefererType is the coarse traffic-source taxonomy recorded per click.
type RefererType string

const (
	RefererDirect   RefererType = "direct"
	RefererInternal RefererType = "knowledgelib_page"
	RefererAIAgent  RefererType = "ai_agent"
	RefererSearch   RefererType = "search"
	RefererExternal RefererType = "external"
)

// AgentType identifies a specific AI-assistant product from its user agent.
type AgentType string

const (
	AgentChatGPT    AgentType = "chatgpt"
	AgentClaude     AgentType = "claude"
	AgentPerplexity AgentType = "perplexity"
)

// DeviceType is the device class derived from the user agent.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// AffiliateLink is a resolved slug -> destination mapping. The link store is
// the system of record; this service only ever reads it.
type AffiliateLink struct {
	ID             int64   `json:"id"`
	DestinationURL string  `json:"destination_url"`
	CardID         string  `json:"card_id"`
	ProductName    *string `json:"product_name"`
}

// ClickEvent is the attribution record appended to the analytics sink once
// per resolved redirect. Written exactly once, never read back. Nullable
// columns are pointers so absent values serialize as JSON null.
type ClickEvent struct {
	LinkID         int64       `json:"link_id"`
	CardID         string      `json:"card_id"`
	Referer        *string     `json:"referer"`
	RefererType    RefererType `json:"referer_type"`
	AgentType      *AgentType  `json:"agent_type"`
	IPHash         string      `json:"ip_hash"`
	UserAgent      *string     `json:"user_agent"`
	CountryCode    *string     `json:"country_code"`
	DeviceType     *DeviceType `json:"device_type"`
	DestinationURL string      `json:"destination_url"`
	HTTPStatus     int         `json:"http_status"`
}

// RequestMeta carries the request headers consumed for attribution. Extracted
// before the redirect response is written, since the request is not safe to
// touch from the detached logging task.
type RequestMeta struct {
	Referer     string
	UserAgent   string
	ClientIP    string
	CountryCode string
}
