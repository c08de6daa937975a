package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-TeamRoles/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go TeamRoles"
	AppID             = "com.github.tartampluch.go-teamroles"
	KeyringService    = "com.github.tartampluch.go-teamroles"
	LocalhostBindAddr = "127.0.0.1"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeConfig  = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the persisted role-state file which names individuals.
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--. Used for exported ICS files.
	FilePermShared fs.FileMode = 0644

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Role Identifiers
// -----------------------------------------------------------------------------

const (
	RoleMeetingFacilitator = "meeting-facilitator"
	RoleSupportSteward     = "support-steward"
)

// -----------------------------------------------------------------------------
// Rotation Cadence Defaults
// -----------------------------------------------------------------------------

const (
	// Meeting Facilitator: a calendar-month role, rotated monthly.
	FacilitatorFrequencyMonths = 1
	FacilitatorPeriodMonths    = 1
	FacilitatorEventsPerYear   = 12
	// The next facilitator is read one event ahead of the ongoing one.
	FacilitatorLookup = 1

	// Support Steward: a day-granularity role. Terms last four weeks and a
	// new term begins every fortnight, so two stewards always overlap.
	StewardFrequencyDays = 14
	StewardPeriodDays    = 28
	StewardEventsPerYear = 26
	// Because terms overlap, the "current" event is two entries back from
	// the end of the upcoming-events list, not one.
	StewardLookup = 2

	// Stewards hand over on Wednesdays (ISO weekday numbering).
	StewardHandoverWeekday = 3
)

// -----------------------------------------------------------------------------
// Event Wire Format
// -----------------------------------------------------------------------------

const (
	// DateFormat is the all-day date layout used on the calendar wire.
	DateFormat = "2006-01-02"

	// EventTimeZone is attached to every all-day event we create.
	EventTimeZone = "Etc/UTC"

	// FormatEventSummary composes "<Role Title>: <FirstName>".
	FormatEventSummary = "%s: %s"

	// SummarySeparator splits a summary into role title and assignee.
	// The assignee is always the segment after the LAST separator.
	SummarySeparator = ":"

	// MaxListResults caps how many upcoming events we pull per query.
	// 12 facilitator events plus 26 steward events per year fit well within it.
	MaxListResults = 50
)

// -----------------------------------------------------------------------------
// State File (team-roles.json)
// -----------------------------------------------------------------------------

const (
	DefaultStatePath = "team-roles.json"
	StateIndent      = "    "
	StateTempPattern = "team-roles-*.json"
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug     = "debug"
	FlagYes       = "yes"
	FlagCount     = "count"
	FlagDate      = "date"
	FlagMember    = "member"
	FlagOutput    = "output"
	FlagPort      = "port"
	FlagDescDebug = "Enable debug logging"
	FlagDescYes   = "Automatically confirm all prompts"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Variables & Keyring Keys
// -----------------------------------------------------------------------------

const (
	EnvUsergroup    = "USERGROUP_NAME"
	EnvCalendarID   = "CALENDAR_ID"
	EnvSlackToken   = "SLACK_BOT_TOKEN"
	EnvGeekbotToken = "GEEKBOT_API_TOKEN"
	EnvGoogleCreds  = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvStatePath    = "TEAM_ROLES_PATH"
	EnvCatalogPath  = "ROLES_CATALOG_PATH"
	EnvCI           = "CI"

	KeyringSlackToken   = "slack_bot_token"
	KeyringGeekbotToken = "geekbot_api_token"
)

// -----------------------------------------------------------------------------
// Geekbot Standups
// -----------------------------------------------------------------------------

const (
	GeekbotAPIURL       = "https://api.geekbot.io"
	GeekbotStandupsPath = "/v1/standups"

	StandupNameFacilitator = "MeetingFacilitatorStandup"
	StandupNameSteward     = "SupportStewardStandup"

	StandupDayFacilitator = "Mon"
	StandupDaySteward     = "Wed"

	StandupChannelFacilitator = "#team-updates"
	StandupChannelSteward     = "#support-freshdesk"

	StandupTime     = "10:00:00"
	StandupTimezone = "user_local"
	StandupWaitTime = 10
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go TeamRoles//Engine//EN"
	ICalCalName = "Team Roles"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goteamroles"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object served when no
	// events exist yet.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
	UIDSalt         = "go-teamroles-v1-"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	DefaultPort        = "18090"
	AllowedMethods     = "GET, HEAD"
	RouteFeed          = "/team-roles.ics"
	AddrSeparator      = ":"
	MinPort            = 1
	MaxPort            = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderLastMod      = "Last-Modified"
	HeaderAuth         = "Authorization"
	HeaderRetryAfter   = "Retry-After"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrConfigMissing    = "configuration error: required value is not set"
	ErrStateFileMissing = "state file must exist to continue"
	ErrEmptyHistory     = "no events found in the calendar for this role"
	ErrMemberNotFound   = "team member not found in roster"
	ErrUnknownRole      = "unknown role"
	ErrEmptyRoster      = "roster is empty"
	ErrDuplicateRoster  = "roster contains duplicate names"
	ErrBadCadence       = "role cadence must have positive frequency and period"
	ErrBadCadenceUnit   = "unsupported cadence unit"
	ErrEventOrder       = "event end date must be after its start date"
	ErrDateParse        = "unable to parse date"
	ErrCatalogLoad      = "failed to load role catalog"
	ErrStateLoad        = "failed to read role state"
	ErrStateWrite       = "failed to write role state"
	ErrCalendarList     = "failed to list calendar events"
	ErrCalendarCreate   = "failed to create calendar event"
	ErrCalendarDelete   = "failed to delete calendar event"
	ErrRosterFetch      = "failed to fetch roster from Slack"
	ErrUsergroupLookup  = "usergroup not found in workspace"
	ErrGeekbotRequest   = "geekbot API request failed"
	ErrSecretMissing    = "secret not found in environment or keyring"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrWriteResp        = "failed to write response body"
	ErrAppFailed        = "command failed"
	ErrMutuallyIncl     = "both --member and --date must be provided together"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotReady     = "Schedule not generated yet, try again shortly."
	RetryAfterSeconds   = "10"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting go-teamroles"
	MsgAppStop         = "Done"
	MsgPullingEvents   = "Pulling events starting after date"
	MsgLastEvent       = "Extracting metadata for last event in the series"
	MsgFirstEvent      = "Extracting metadata for first event in the series"
	MsgNextFromCal     = "Extracting next team member from the calendar"
	MsgNextFallback    = "Couldn't extract the next team member from the calendar, falling back onto iteration"
	MsgGeneratingMeta  = "Generating metadata for next event"
	MsgCreatingEvent   = "Creating calendar event"
	MsgDeletingEvent   = "Deleting calendar event"
	MsgEventsFound     = "Upcoming events found"
	MsgNoEvents        = "No upcoming events found"
	MsgAborted         = "Ok! Exiting without making any changes"
	MsgAdjustedRefDate = "Adjusted reference date to the next handover day"
	MsgDefaultRefDate  = "No calendar history and no reference date given, using a computed default. Double check the generated events before creating them"
	MsgStateFallback   = "No calendar history and no team member given, falling back onto the role state file. Double check the generated events before creating them"
	MsgUpdatingRole    = "Updating role state"
	MsgWroteState      = "Wrote role state file"
	MsgManagerBackfill = "Backfilling the standup manager ID from the roster"
	MsgRosterFetched   = "Roster fetched"
	MsgStandupExists   = "Standup exists, updating"
	MsgStandupCreate   = "Standup doesn't exist, creating"
	MsgStandupWeekly   = "The standup runs weekly. Edit it in the Geekbot dashboard if another period is required"
	MsgServerListen    = "HTTP feed listening"
	MsgServerStop      = "Shutting down HTTP feed"
	MsgFeedUpdated     = "Feed cache updated"
	MsgExported        = "Wrote ICS file"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyRole      = "role"
	LogKeyMember    = "member"
	LogKeyDate      = "date"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeyStatus    = "status"
	LogKeyCount     = "count"
	LogKeyFile      = "file"
	LogKeyPort      = "port"
	LogKeyURL       = "url"
	LogKeyETag      = "etag"
	LogKeySizeBytes = "size_bytes"
	LogKeyUsergroup = "usergroup"
	LogKeyStandup   = "standup"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompCalendar = "calendar"
	CompRoster   = "roster"
	CompState    = "state"
	CompStandup  = "standup"
	CompServer   = "server"
	CompMain     = "main"
)
