package kafka

// TopicPrefix namespaces every topic written by this service.
const TopicPrefix = "portfolio"

// Topic builds "portfolio.<domain>.<action>".
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}
