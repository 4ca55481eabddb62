package domain

// Default values for newly added rows, matching the planner form.
const (
	DefaultStreamStartAge = 67
	DefaultPaymentAge     = 65
)

// NextID returns max(ids)+1, or 1 when ids is empty
func NextID(ids []int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

// NextIncomeStreamID returns the id the next added stream will receive.
// Ids are shared between the self and partner lists.
func (p *Plan) NextIncomeStreamID() int {
	var ids []int
	for _, s := range p.AllIncomeStreams() {
		ids = append(ids, s.ID)
	}
	next := NextID(ids)
	if next <= p.streamHighWater {
		next = p.streamHighWater + 1
	}
	return next
}

// NextPaymentID returns the id the next added one-time payment will receive
func (p *Plan) NextPaymentID() int {
	var ids []int
	for _, pay := range p.AllOneTimePayments() {
		ids = append(ids, pay.ID)
	}
	next := NextID(ids)
	if next <= p.paymentHighWater {
		next = p.paymentHighWater + 1
	}
	return next
}

// AddIncomeStream appends a new stream with default start age and zero amount
// to the owner's list and returns it.
func (p *Plan) AddIncomeStream(name string, owner Owner) IncomeStream {
	stream := IncomeStream{
		ID:       p.NextIncomeStreamID(),
		Name:     name,
		Owner:    owner,
		StartAge: DefaultStreamStartAge,
	}
	p.streamHighWater = stream.ID
	if owner.IsPartner() && p.Partner != nil {
		p.Partner.IncomeStreams = append(p.Partner.IncomeStreams, stream)
	} else {
		stream.Owner = OwnerSelf
		p.IncomeStreams = append(p.IncomeStreams, stream)
	}
	return stream
}

// AddOneTimePayment appends a new payment with the default trigger age
func (p *Plan) AddOneTimePayment(name string, owner Owner) OneTimePayment {
	payment := OneTimePayment{
		ID:    p.NextPaymentID(),
		Name:  name,
		Owner: owner,
		Age:   DefaultPaymentAge,
	}
	p.paymentHighWater = payment.ID
	if owner.IsPartner() && p.Partner != nil {
		p.Partner.OneTimePayments = append(p.Partner.OneTimePayments, payment)
	} else {
		payment.Owner = OwnerSelf
		p.OneTimePayments = append(p.OneTimePayments, payment)
	}
	return payment
}

// RemoveIncomeStream deletes the stream with the given id from either list.
// It reports whether a stream was removed.
func (p *Plan) RemoveIncomeStream(id int) bool {
	p.markStreamHighWater()
	var removed bool
	p.IncomeStreams, removed = removeStream(p.IncomeStreams, id)
	if !removed && p.Partner != nil {
		p.Partner.IncomeStreams, removed = removeStream(p.Partner.IncomeStreams, id)
	}
	return removed
}

// RemoveOneTimePayment deletes the payment with the given id from either list
func (p *Plan) RemoveOneTimePayment(id int) bool {
	p.markPaymentHighWater()
	var removed bool
	p.OneTimePayments, removed = removePayment(p.OneTimePayments, id)
	if !removed && p.Partner != nil {
		p.Partner.OneTimePayments, removed = removePayment(p.Partner.OneTimePayments, id)
	}
	return removed
}

func (p *Plan) markStreamHighWater() {
	if next := p.NextIncomeStreamID() - 1; next > p.streamHighWater {
		p.streamHighWater = next
	}
}

func (p *Plan) markPaymentHighWater() {
	if next := p.NextPaymentID() - 1; next > p.paymentHighWater {
		p.paymentHighWater = next
	}
}

func removeStream(streams []IncomeStream, id int) ([]IncomeStream, bool) {
	for i, s := range streams {
		if s.ID == id {
			return append(streams[:i:i], streams[i+1:]...), true
		}
	}
	return streams, false
}

func removePayment(payments []OneTimePayment, id int) ([]OneTimePayment, bool) {
	for i, pay := range payments {
		if pay.ID == id {
			return append(payments[:i:i], payments[i+1:]...), true
		}
	}
	return payments, false
}
