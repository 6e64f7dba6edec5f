package service

// Test-only exports so the external service_test package can reach the
// unexported completion knobs and prompt helper.
var (
	ChatParams          = chatParams
	MultilingualContext = multilingualContext
)
