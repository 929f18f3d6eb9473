// Package loop implements the post loop theme templates drive:
//
//	q := loop.New(ctx, exec, env, classify.Args{PostType: []string{"page"}})
//	for q.HavePosts() {
//		q.ThePost()
//		render(q.Post())
//	}
//
// A Query resolves its posts once, at construction, in one of four modes
// (post ID, page ID, slug, filtered list). The cursor starts before the
// first post (-1) and only moves through ThePost, Reset and Rewind.
//
// Listeners receive loop_start when the cursor first moves onto a post,
// the_post for every advance, and loop_end the first time HavePosts
// observes exhaustion. Both start and end fire at most once per pass;
// Rewind and Reset begin a new pass.
package loop
