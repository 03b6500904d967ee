package connectors

type FetchService struct {
	connector MailConnector
	store     *DocStore
}

type FetchResult struct {
	Fetched int
	Stored  int
}

func NewFetchService(store *DocStore, connector MailConnector) *FetchService {
	return &FetchService{connector: connector, store: store}
}

func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	stored := 0
	for _, msg := range messages {
		if _, err := s.store.StoreMail(msg); err != nil {
			return FetchResult{}, err
		}
		stored++
	}

	return FetchResult{Fetched: len(messages), Stored: stored}, nil
}
