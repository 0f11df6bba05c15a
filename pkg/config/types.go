package config

// Namespaced settings keys
const (
	KeyLinuxAddress  = "linux/address"
	KeyLinuxUsername = "linux/username"
	KeyLinuxPassword = "linux/password"
)

// LinuxPrefix is the namespace shared by all remote desktop keys
const LinuxPrefix = "linux/"

// KnownKeys lists every key the application reads
var KnownKeys = []string{KeyLinuxAddress, KeyLinuxUsername, KeyLinuxPassword}

// LinuxSettings holds the SSH credentials of the remote Linux desktop
type LinuxSettings struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Complete reports whether enough is set to attempt an SSH login
func (s LinuxSettings) Complete() bool {
	return s.Address != "" && s.Username != ""
}

// MaskedPassword returns a display form of the password
func (s LinuxSettings) MaskedPassword() string {
	if s.Password == "" {
		return "(not set)"
	}
	return "********"
}
