package enrichment

import (
	"regexp"

	"knowledgelib/internal/redirect/domain"
)

type deviceRule struct {
	pattern *regexp.Regexp
	device  domain.DeviceType
}

// DeviceClassifier detects the device class from User-Agent strings.
type DeviceClassifier struct {
	rules []deviceRule
}

// NewDeviceClassifier creates a DeviceClassifier. The mobile rule precedes
// the tablet rule: a UA carrying both "ipad" and "mobile" counts as mobile.
func NewDeviceClassifier() *DeviceClassifier {
	return &DeviceClassifier{
		rules: []deviceRule{
			{regexp.MustCompile(`(?i)mobile|android|iphone`), domain.DeviceMobile},
			{regexp.MustCompile(`(?i)tablet|ipad`), domain.DeviceTablet},
		},
	}
}

// Classify returns the device class for a User-Agent string. The second
// return value is false only when the user agent is absent; any non-empty UA
// that matches no rule is desktop.
func (c *DeviceClassifier) Classify(userAgent string) (domain.DeviceType, bool) {
	if userAgent == "" {
		return "", false
	}
	for _, rule := range c.rules {
		if rule.pattern.MatchString(userAgent) {
			return rule.device, true
		}
	}
	return domain.DeviceDesktop, true
}
