package radtags

import "time"

// Tag markup defaults
const (
	DefaultPrefix   = "r"
	DefaultMaxDepth = 100
)

// Page tag names
const (
	TagNameTitle       = "title"
	TagNameURL         = "url"
	TagNameSlug        = "slug"
	TagNamePublishedAt = "published_at"
)

// Author tag names
const (
	TagNameAuthor              = "author"
	TagNameAuthorName          = "author:name"
	TagNameAuthorEmail         = "author:email"
	TagNameAuthorBio           = "author:bio"
	TagNameAuthorGravatarURL   = "author:gravatar_url"
	TagNameAuthors             = "authors"
	TagNameAuthorsEach         = "authors:each"
	TagNameAuthorsEachName     = "authors:each:name"
	TagNameAuthorsEachEmail    = "authors:each:email"
	TagNameAuthorsEachBio      = "authors:each:bio"
	TagNameAuthorsEachGravatar = "authors:each:gravatar_url"
	TagNamePages               = "pages"
	TagNamePagesCount          = "pages:count"
	TagNamePagesEach           = "pages:each"
)

// Blog tag names
const (
	TagNameBlogTags   = "blogtags"
	TagNameTechnorati = "blogtags:technorati"
	TagNameDelicious  = "blogtags:delicious"
	TagNameDigg       = "blogtags:digg"
	TagNameBlinklist  = "blogtags:blinklist"
	TagNameFurl       = "blogtags:furl"
	TagNameReddit     = "blogtags:reddit"
)

// Attribute names
const (
	AttrLimit   = "limit"
	AttrOffset  = "offset"
	AttrLogin   = "login"
	AttrURL     = "url"
	AttrBy      = "by"
	AttrOrder   = "order"
	AttrStatus  = "status"
	AttrSize    = "size"
	AttrFormat  = "format"
	AttrRating  = "rating"
	AttrDefault = "default"
	AttrSecure  = "secure"
)

// Find option defaults and values
const (
	DefaultOrderBy     = "published_at"
	DefaultOrder       = "asc"
	DefaultStatus      = "published"
	OrderAsc           = "asc"
	OrderDesc          = "desc"
	StatusAll          = "all"
	LoginSeparator     = ","
	MaxNumberAttrWidth = 4
)

// Locals keys
const (
	LocalPage    = "page"
	LocalAuthor  = "author"
	LocalAuthors = "authors"
	LocalPages   = "pages"
	LocalRequest = "request"
)

// Gravatar constants
const (
	GravatarBaseURL       = "http://www.gravatar.com/avatar/"
	GravatarSecureBaseURL = "https://secure.gravatar.com/avatar/"
	GravatarParamSize     = "s"
	GravatarParamDefault  = "d"
	GravatarParamRating   = "r"
)

// Blog tag constants
const (
	DefaultBlogTagsImagePath = "/images/blogtags/"
	DefaultScheme            = "http"
	DefaultHost              = "localhost"
	BlogTagsImageExt         = ".gif"
)

// Text filter names
const (
	FilterNameMarkdown    = "Markdown"
	FilterNameSmartyPants = "SmartyPants"
	FilterNameSuffix      = "Filter"
)

// Store driver names
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// PostgreSQL store defaults
const (
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	SQLTablePrefix                 = "radtags_"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
	MetaKeyTag       = "tag"
	MetaKeyAttribute = "attribute"
	MetaKeyValue     = "value"
	MetaKeyExpected  = "expected"
	MetaKeyActual    = "actual"
	MetaKeyFilter    = "filter"
	MetaKeyResource  = "resource"
	MetaKeyKey       = "key"
	MetaKeyDriver    = "driver"
)

// Log message constants
const (
	LogMsgEngineCreated     = "engine created"
	LogMsgLibraryRegistered = "tag library registered"
	LogMsgRenderStart       = "render started"
	LogMsgRenderComplete    = "render complete"
	LogMsgRenderFailed      = "render failed"
	LogMsgAuthorResolved    = "author resolved from page creator"
	LogMsgAuthorMissing     = "no author in scope"
	LogMsgPageNotFound      = "page not found for url"
	LogMsgStoreOpened       = "store opened"
	LogMsgFixturesLoaded    = "fixtures loaded"
)

// Log field constants
const (
	LogFieldLibrary = "library"
	LogFieldTags    = "tags"
	LogFieldTag     = "tag"
	LogFieldPage    = "page"
	LogFieldAuthor  = "author"
	LogFieldURL     = "url"
	LogFieldDriver  = "driver"
	LogFieldCount   = "count"
	LogFieldOutput  = "output_len"
)
