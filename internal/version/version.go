package version

// Version is overridden at build time with
// -ldflags "-X users-manager/internal/version.Version=v1.2.3".
var Version = "dev"

func String() string {
	return "users-manager " + Version
}
