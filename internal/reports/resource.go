package reports

// Kind tags the variant of a Resource.
type Kind string

const (
	KindMember      Kind = "Member"
	KindPost        Kind = "Post"
	KindComment     Kind = "Comment"
	KindUnsupported Kind = "Unsupported"
)

// Resource is the flagged entity. The set of variants is closed: Member, Post,
// Comment and Unsupported are the only implementations.
type Resource interface {
	Kind() Kind
	ResourceID() string
	isResource()
}

// Member is the projection of a member profile.
type Member struct {
	ID   string
	Name string
}

// Post is the projection of a post.
type Post struct {
	ID    string
	Title string
}

// Comment is the projection of a comment.
type Comment struct {
	ID      string
	Content string
}

// Unsupported stands for any identifier that is not a member, post or comment,
// including tags, categories and identifiers that do not exist.
type Unsupported struct {
	ID string
}

func (Member) Kind() Kind      { return KindMember }
func (Post) Kind() Kind        { return KindPost }
func (Comment) Kind() Kind     { return KindComment }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (m Member) ResourceID() string      { return m.ID }
func (p Post) ResourceID() string        { return p.ID }
func (c Comment) ResourceID() string     { return c.ID }
func (u Unsupported) ResourceID() string { return u.ID }

func (Member) isResource()      {}
func (Post) isResource()        {}
func (Comment) isResource()     {}
func (Unsupported) isResource() {}

// ResourceRef identifies a resource by kind and id. Reports are keyed by it.
type ResourceRef struct {
	Kind Kind
	ID   string
}

// RefOf returns the reference of a resource.
func RefOf(r Resource) ResourceRef {
	return ResourceRef{Kind: r.Kind(), ID: r.ResourceID()}
}

func (r ResourceRef) String() string {
	return string(r.Kind) + ":" + r.ID
}
