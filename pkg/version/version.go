package version

// Current is the build version, set with -ldflags "-X .../pkg/version.Current=v1.2.3".
var Current = "dev"

const AppName = "roadmap"
