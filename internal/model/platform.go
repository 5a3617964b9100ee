package model

// Platform keys, in dashboard order.
const (
	PlatformFacebook    = "Facebook"
	PlatformLinkedIn    = "LinkedIn"
	PlatformInstagram   = "Instagram"
	PlatformWebsite     = "Site Web"
	PlatformGMB         = "Google My Business"
	PlatformPagesJaunes = "Pages Jaunes"
	PlatformYouTube     = "YouTube"
	PlatformTripAdvisor = "TripAdvisor"
)

// PlatformDescriptor describes one audited online platform.
type PlatformDescriptor struct {
	Key   string `json:"key" yaml:"key"`
	Color string `json:"color" yaml:"color"`
	Icon  string `json:"icon" yaml:"icon"`
}

// DefaultPlatforms returns the fixed ordered set of audited platforms.
// A fresh slice is returned on every call so callers cannot alter the set.
func DefaultPlatforms() []PlatformDescriptor {
	return []PlatformDescriptor{
		{Key: PlatformFacebook, Color: "#1877F2", Icon: "Facebook"},
		{Key: PlatformLinkedIn, Color: "#0A66C2", Icon: "Linkedin"},
		{Key: PlatformInstagram, Color: "#E4405F", Icon: "Instagram"},
		{Key: PlatformWebsite, Color: "#3b82f6", Icon: "Globe"},
		{Key: PlatformGMB, Color: "#4285F4", Icon: "MapPin"},
		{Key: PlatformPagesJaunes, Color: "#FFD700", Icon: "Phone"},
		{Key: PlatformYouTube, Color: "#FF0000", Icon: "Youtube"},
		{Key: PlatformTripAdvisor, Color: "#00AF87", Icon: "Plane"},
	}
}

// PlatformKeys returns the keys of the given descriptors, in order.
func PlatformKeys(platforms []PlatformDescriptor) []string {
	keys := make([]string, len(platforms))
	for i, p := range platforms {
		keys[i] = p.Key
	}
	return keys
}
