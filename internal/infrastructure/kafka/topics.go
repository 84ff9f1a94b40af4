package kafka

// Topic name format: {domain}.{entity}.{event}.v1.
const (
	topicDomain = "swiftex"
	topicPrefix = topicDomain + "."
	topicSuffix = ".v1"

	// TopicCommandIssued carries inbound command envelopes from the UI
	// collaborator.
	TopicCommandIssued = topicPrefix + "command.issued" + topicSuffix

	// TopicCommandResult carries the report or error produced by running
	// one command envelope.
	TopicCommandResult = topicPrefix + "command.result" + topicSuffix

	// TopicParcelLifecycle carries one event per parcel history append —
	// one parcel's lifecycle trace.
	TopicParcelLifecycle = topicPrefix + "parcel.lifecycle" + topicSuffix
)

// Metadata keys for Kafka messages.
const (
	metadataKeyPartitionKey = "partition_key"
)
