package message

import "factorlink/internal"

// Repository holds one batch worth of decoded messages. Seller agreements
// are unique per join key with last-write-wins; transactional messages
// accumulate in arrival order. A repository is built fresh for every run.
type Repository struct {
	sellers       map[internal.JoinKey]internal.Message
	transactional map[internal.MessageKind][]internal.Message
}

func NewRepository() *Repository {
	r := &Repository{}
	r.Reset()
	return r
}

func (r *Repository) Reset() {
	r.sellers = map[internal.JoinKey]internal.Message{}
	r.transactional = map[internal.MessageKind][]internal.Message{}
}

func (r *Repository) Register(msg internal.Message) {
	if msg.Kind == internal.KindSellerAgreement {
		r.sellers[msg.JoinKey()] = msg
		return
	}
	r.transactional[msg.Kind] = append(r.transactional[msg.Kind], msg)
}

func (r *Repository) LookupSeller(senderCode, sellerNr string) (internal.Message, bool) {
	msg, ok := r.sellers[internal.JoinKey{SenderCode: senderCode, SellerNr: sellerNr}]
	return msg, ok
}

// All returns the registered messages of one transactional kind in arrival
// order. The returned slice is shared; callers must not mutate it.
func (r *Repository) All(kind internal.MessageKind) []internal.Message {
	return r.transactional[kind]
}

func (r *Repository) Len() int {
	n := len(r.sellers)
	for _, msgs := range r.transactional {
		n += len(msgs)
	}
	return n
}
