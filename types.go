package folio

import "github.com/eringen/folio/views"

// BlogPost is a blog preview stored in SQLite and rendered on the blog panel.
type BlogPost = views.BlogPost
