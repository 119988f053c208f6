package nav

// DefaultGroupOrder ranks the well-known group labels; lower sorts first.
// Treat as read-only.
var DefaultGroupOrder = map[string]int{
	// Vietnamese
	"Nội dung":   1,
	"Người dùng": 2,
	"Bố cục":     3,
	"Cài đặt":    4,
	"Chat & AI":  5,
	"CRM":        6,
	"Giao diện":  7,
	"Công cụ":    8,
	"Nâng cao":   99,

	// English
	"Content":    1,
	"Users":      2,
	"Layout":     3,
	"Settings":   4,
	"Appearance": 7,
	"Tools":      8,
	"Advanced":   99,

	// Host fallback groups
	"collections": 1,
	"globals":     2,
	"Collections": 1,
	"Globals":     2,
}

// DefaultIcons maps common collection and global slugs to icon keys.
// Treat as read-only.
var DefaultIcons = map[string]IconRef{
	"dashboard": IconByKey("layout-dashboard"),

	// content
	"pages":      IconByKey("file-text"),
	"posts":      IconByKey("newspaper"),
	"media":      IconByKey("image"),
	"files":      IconByKey("file"),
	"categories": IconByKey("folder-open"),
	"tags":       IconByKey("tag"),
	"badges":     IconByKey("award"),

	"users": IconByKey("users"),

	// chat
	"chats":          IconByKey("message-square"),
	"messages":       IconByKey("send"),
	"knowledge-base": IconByKey("book-open"),
	"comments":       IconByKey("message-circle"),

	// crm
	"contacts":           IconByKey("contact"),
	"contact-fields":     IconByKey("database"),
	"contact-notes":      IconByKey("sticky-note"),
	"leads":              IconByKey("target"),
	"deals":              IconByKey("briefcase"),
	"tickets":            IconByKey("ticket"),
	"activities":         IconByKey("activity"),
	"customer-feedback":  IconByKey("thumbs-up"),
	"customer-interests": IconByKey("heart"),

	// globals
	"header":                 IconByKey("menu"),
	"footer":                 IconByKey("layout-template"),
	"analytics-settings":     IconByKey("bar-chart-3"),
	"chat-dashboard":         IconByKey("layout-dashboard"),
	"crm-dashboard":          IconByKey("layout-dashboard"),
	"comments-dashboard":     IconByKey("layout-dashboard"),
	"settings":               IconByKey("settings"),
	"chat-config":            IconByKey("message-square"),
	"ai-config":              IconByKey("bot"),
	"posts-page-settings":    IconByKey("newspaper"),
	"theme-settings":         IconByKey("palette"),
	"wordpress-import":       IconByKey("file-down"),
	"company-info":           IconByKey("building-2"),
	"image-optimizer":        IconByKey("image-plus"),
	"floating-action-button": IconByKey("mouse-pointer-click"),
	"search":                 IconByKey("search"),
	"redirects":              IconByKey("arrow-right-left"),
	"form-submissions":       IconByKey("database"),
	"advanced":               IconByKey("wrench"),

	// keys usable by custom links
	"link":          IconByKey("link"),
	"external-link": IconByKey("external-link"),
	"external":      IconByKey("external-link"),
	"globe":         IconByKey("globe"),
	"sparkles":      IconByKey("sparkles"),
	"zap":           IconByKey("zap"),
	"star":          IconByKey("star"),
	"folder":        IconByKey("folder"),
	"file-code":     IconByKey("file-code"),
	"terminal":      IconByKey("terminal"),
	"help":          IconByKey("help-circle"),
	"info":          IconByKey("info"),
	"docs":          IconByKey("book-marked"),
	"documentation": IconByKey("book-marked"),
	"api":           IconByKey("terminal"),
	"custom":        IconByKey("sparkles"),
}

// DefaultBadgeColors are the CSS variables backing the badge palettes
var DefaultBadgeColors = map[string]string{
	"--badge-red-bg":      "var(--theme-error-500, #ef4444)",
	"--badge-red-text":    "#ffffff",
	"--badge-yellow-bg":   "var(--theme-warning-500, #eab308)",
	"--badge-yellow-text": "#000000",
	"--badge-blue-bg":     "var(--theme-elevation-500, #3b82f6)",
	"--badge-blue-text":   "#ffffff",
	"--badge-green-bg":    "var(--theme-success-500, #22c55e)",
	"--badge-green-text":  "#ffffff",
	"--badge-orange-bg":   "#f97316",
	"--badge-orange-text": "#ffffff",
	"--badge-gray-bg":     "var(--theme-elevation-300, #6b7280)",
	"--badge-gray-text":   "#ffffff",
}
