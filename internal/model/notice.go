package model

// Titles for the kinds of failure the workflow reports.
const (
	TitleCreationFailed = "Error creating project"
	TitlePickerFailed   = "Could not open directory picker"
)

// Notice is a failure shown to the user. Message is shown exactly as given;
// Title names what went wrong and is displayed apart from it.
type Notice struct {
	Title   string
	Message string
}

func CreationFailedNotice(message string) Notice {
	return Notice{Title: TitleCreationFailed, Message: message}
}

func PickerFailedNotice(err error) Notice {
	return Notice{Title: TitlePickerFailed, Message: err.Error()}
}
