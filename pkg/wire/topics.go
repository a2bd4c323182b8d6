package wire

const (
	DefaultTopicSnapshot = "GUI_GRAPH"
	DefaultTopicProducer = "GUI_PRODUCER_CHANGE"
	DefaultTopicStager   = "GUI_STAGER_CHANGE"
	DefaultTopicConsumer = "GUI_CONSUMER_CHANGE"
	DefaultTopicRouter   = "GUI_ROUTER_CHANGE"
	DefaultTopicFinish   = "FINISH"
)

const (
	DefaultStepDelimiter   = "$$processus"
	DefaultRouterDelimiter = "_router"
)

// TopicSet names the labels a monitor subscribes to. Producer, stager and
// consumer labels all carry step changes and are routed identically.
type TopicSet struct {
	Snapshot string `yaml:"snapshot"`
	Producer string `yaml:"producer"`
	Stager   string `yaml:"stager"`
	Consumer string `yaml:"consumer"`
	Router   string `yaml:"router"`
	Finish   string `yaml:"finish"`
}

func DefaultTopics() TopicSet {
	return TopicSet{
		Snapshot: DefaultTopicSnapshot,
		Producer: DefaultTopicProducer,
		Stager:   DefaultTopicStager,
		Consumer: DefaultTopicConsumer,
		Router:   DefaultTopicRouter,
		Finish:   DefaultTopicFinish,
	}
}

// All returns every label in subscription order.
func (t TopicSet) All() []string {
	return []string{t.Snapshot, t.Producer, t.Stager, t.Consumer, t.Router, t.Finish}
}

func (t TopicSet) kind(topic string) Kind {
	switch topic {
	case "":
		return KindVoid
	case t.Snapshot:
		return KindSnapshot
	case t.Producer, t.Stager, t.Consumer:
		return KindStepChange
	case t.Router:
		return KindRouterChange
	case t.Finish:
		return KindSessionEnd
	default:
		return KindVoid
	}
}

// Delimiters are the tokens separating a step name from the sub-unit suffix
// that step and router changes append to it.
type Delimiters struct {
	Step   string `yaml:"step"`
	Router string `yaml:"router"`
}

func DefaultDelimiters() Delimiters {
	return Delimiters{Step: DefaultStepDelimiter, Router: DefaultRouterDelimiter}
}
