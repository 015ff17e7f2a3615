package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	BusinessHandler  *BusinessHandler
	DirectoryHandler *DirectoryHandler
	MetaHandler      *MetaHandler
}
