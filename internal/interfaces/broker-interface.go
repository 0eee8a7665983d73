package interfaces

type ConsumerHandler interface {
	HandleMessage(key, value string) error
}

type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
