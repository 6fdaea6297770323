package main

// FormatUserError renders err for a terminal user. It exists as the one
// place to special-case noisy wrapped errors later; today it just returns
// the message.
func FormatUserError(err error) string {
	return err.Error()
}
