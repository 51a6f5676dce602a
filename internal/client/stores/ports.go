package stores

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// Navigator moves the presentation layer between views.
type Navigator interface {
	// Navigate pushes a new view.
	Navigate(path string)
	// Replace swaps the current view's path without adding history.
	Replace(path string)
	// OpenEditor reopens the profile edit surface.
	OpenEditor()
}

// Notifier shows a blocking, user-facing message.
type Notifier interface {
	Alert(msg string)
}

const SignInPath = "/signin"

func UserPath(login string) string {
	return "/user/" + login
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
func (nopNavigator) Replace(string)  {}
func (nopNavigator) OpenEditor()     {}

type nopNotifier struct{}

func (nopNotifier) Alert(string) {}
