package models

// Canonical advertising platforms accepted on campaign creation.
const (
	PlatformLinkedIn  = "linkedin"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformGoogleAds = "google_ads"
	PlatformEmail     = "email"
)

var CanonicalPlatforms = []string{
	PlatformLinkedIn,
	PlatformFacebook,
	PlatformInstagram,
	PlatformTwitter,
	PlatformGoogleAds,
	PlatformEmail,
}

func IsCanonicalPlatform(p string) bool {
	for _, c := range CanonicalPlatforms {
		if c == p {
			return true
		}
	}
	return false
}

// Content types
const (
	ContentTypePost          = "post"
	ContentTypeAdCopy        = "ad_copy"
	ContentTypeEmailCampaign = "email_campaign"
)

// ContentTypeFor maps a platform to the kind of copy produced for it.
func ContentTypeFor(platform string) string {
	switch platform {
	case PlatformGoogleAds:
		return ContentTypeAdCopy
	case PlatformEmail:
		return ContentTypeEmailCampaign
	default:
		return ContentTypePost
	}
}

// PlatformWantsVisual reports whether a visual asset is attempted for the
// platform. Visual generation is best-effort and never fails a run.
func PlatformWantsVisual(platform string) bool {
	switch platform {
	case PlatformInstagram, PlatformFacebook, PlatformLinkedIn:
		return true
	}
	return false
}
