package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/services"
	"forumx/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const postsPerPage = 15

type PostHandler struct {
	media *services.MediaStore
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		media: services.NewMediaStore(),
	}
}

// fillCommentCounts batch-loads comment counts for a post list.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// canViewPost hides drafts from everyone but their owner (or an admin)
// and removed posts from everyone.
func canViewPost(post *models.Post, viewer *models.User) bool {
	switch post.Status {
	case models.PostPublished:
		return true
	case models.PostDraft:
		return viewer != nil && (viewer.ID == post.UserID || viewer.IsAdmin)
	default:
		return false
	}
}

// canEditPost allows the owner and admins.
func canEditPost(post *models.Post, editor *models.User) bool {
	return editor != nil && (editor.ID == post.UserID || editor.IsAdmin)
}

// splitRemoteURLs parses the pasted-URL textarea: whitespace or comma
// separated, only http(s) entries kept.
func splitRemoteURLs(raw string) []string {
	var urls []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\r' || r == '\t' || r == ','
	}) {
		if strings.HasPrefix(part, "http://") || strings.HasPrefix(part, "https://") {
			urls = append(urls, part)
		}
	}
	return urls
}

// imageSlots returns how many of the supplied images fit under the
// per-post cap given the current stored count. Zero means the cap is
// already reached.
func imageSlots(existing, supplied int) int {
	free := models.MaxImagesPerPost - existing
	if free <= 0 {
		return 0
	}
	if supplied < free {
		return supplied
	}
	return free
}

func parseForumIDs(values []string) []uint {
	var ids []uint
	for _, v := range values {
		if id := utils.StringToInt(v); id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

const homeFeedCacheKey = "home_feed_page_1"

type homeFeed struct {
	Posts []models.Post
	Total int64
}

// invalidateHomeFeed is called after any write that changes what the
// first feed page shows.
func invalidateHomeFeed() {
	utils.GetCache().Delete(homeFeedCacheKey)
}

// Home is the paginated feed of published posts, newest first. The
// first page is the hottest query on the site and is served from a
// short-lived cache.
func (h *PostHandler) Home(c *gin.Context) {
	page, offset := pageParams(c, postsPerPage)

	var posts []models.Post
	var total int64

	cacheable := page == 1
	if cacheable {
		if cached := utils.GetCache().Get(homeFeedCacheKey); cached != nil {
			feed := cached.(homeFeed)
			posts, total = feed.Posts, feed.Total
		}
	}

	if posts == nil {
		db.DB.Model(&models.Post{}).Where("status = ?", models.PostPublished).Count(&total)

		db.DB.Preload("User").Preload("Images").Preload("Categories").
			Where("status = ?", models.PostPublished).
			Order("created_at DESC").
			Limit(postsPerPage).
			Offset(offset).
			Find(&posts)

		fillCommentCounts(posts)

		if cacheable {
			utils.GetCache().Set(homeFeedCacheKey, homeFeed{Posts: posts, Total: total}, time.Minute)
		}
	}

	var forums []models.Forum
	db.DB.Order("header ASC, order_by ASC, title ASC").Find(&forums)

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":       "Home",
		"Posts":       posts,
		"Forums":      forums,
		"CurrentPage": page,
		"TotalPages":  totalPages(total, postsPerPage),
		"Flash":       takeFlash(c),
	})
}

type recommendedPost struct {
	ID             uint
	Title          string
	CreatedAt      time.Time
	SharedTagCount int
	NetScore       int
	Thumb          string
}

// recommendations finds published posts sharing tags with the given
// one, skipping anything the viewer has downvoted, strongest overlap
// first.
func (h *PostHandler) recommendations(post *models.Post, viewerID uint) []recommendedPost {
	if len(post.Categories) == 0 {
		return nil
	}
	forumIDs := make([]uint, len(post.Categories))
	for i, f := range post.Categories {
		forumIDs[i] = f.ID
	}

	var recs []recommendedPost
	db.DB.Table("posts").
		Select(`posts.id, posts.title, posts.created_at,
			COUNT(pc.forum_id) AS shared_tag_count,
			COALESCE((SELECT SUM(vote_type) FROM post_votes WHERE post_id = posts.id), 0) AS net_score,
			(SELECT image_url FROM post_images WHERE post_id = posts.id ORDER BY id ASC LIMIT 1) AS thumb`).
		Joins("JOIN post_categories pc ON posts.id = pc.post_id").
		Joins("LEFT JOIN post_votes pv_filter ON posts.id = pv_filter.post_id AND pv_filter.user_id = ? AND pv_filter.vote_type = -1", viewerID).
		Where("pc.forum_id IN ?", forumIDs).
		Where("posts.id <> ?", post.ID).
		Where("posts.status = ?", models.PostPublished).
		Where("pv_filter.id IS NULL").
		Group("posts.id").
		Order("shared_tag_count DESC, net_score DESC").
		Limit(8).
		Scan(&recs)
	return recs
}

// Detail renders a single post with images, tags, comments, vote
// counts, and the caller's own vote (absent for anonymous viewers).
func (h *PostHandler) Detail(c *gin.Context) {
	viewer := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").Preload("Images").Preload("Categories").
		First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canViewPost(&post, viewer) {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at DESC").
		Find(&comments)

	var upvotes, downvotes int64
	db.DB.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = 1", post.ID).Count(&upvotes)
	db.DB.Model(&models.PostVote{}).Where("post_id = ? AND vote_type = -1", post.ID).Count(&downvotes)

	// nil for anonymous callers
	var userVote *int
	viewerID := uint(0)
	if viewer != nil {
		viewerID = viewer.ID
		var vote models.PostVote
		if err := db.DB.Where("user_id = ? AND post_id = ?", viewer.ID, post.ID).First(&vote).Error; err == nil {
			userVote = &vote.VoteType
		}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Content),
		"Comments":    comments,
		"Upvotes":     upvotes,
		"Downvotes":   downvotes,
		"UserVote":    userVote,
		"Recommended": h.recommendations(&post, viewerID),
		"Flash":       takeFlash(c),
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	var forums []models.Forum
	db.DB.Order("header ASC, order_by ASC, title ASC").Find(&forums)

	Render(c, http.StatusOK, "post/create.html", gin.H{
		"Title":  "New post",
		"Forums": forums,
	})
}

// imageSource is one pending upload: either raw bytes or a pasted URL.
type imageSource struct {
	data      []byte
	filename  string
	remoteURL string
}

// collectImageSources gathers uploaded files (compressed) and pasted
// URLs, capping the combined list at the per-post limit. Extras are
// silently discarded.
func (h *PostHandler) collectImageSources(c *gin.Context) ([]imageSource, error) {
	var sources []imageSource

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, header := range form.File["images"] {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			raw, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, err
			}
			compressed, err := services.CompressImage(raw)
			if err != nil {
				return nil, fmt.Errorf("compress %s: %w", header.Filename, err)
			}
			sources = append(sources, imageSource{data: compressed, filename: header.Filename})
		}
	}

	for _, remote := range splitRemoteURLs(c.PostForm("remote_urls")) {
		sources = append(sources, imageSource{remoteURL: remote})
	}

	sources = sources[:imageSlots(0, len(sources))]
	return sources, nil
}

// uploadAndAttach pushes each source to the media store sequentially
// and records the image rows inside the caller's transaction.
func (h *PostHandler) uploadAndAttach(tx *gorm.DB, postID uint, sources []imageSource) error {
	for _, src := range sources {
		var result *services.UploadResult
		var err error
		if src.remoteURL != "" {
			result, err = h.media.UploadRemote(src.remoteURL)
		} else {
			result, err = h.media.Upload(src.data, src.filename)
		}
		if err != nil {
			return err
		}

		image := models.PostImage{
			PostID:   postID,
			ImageURL: result.SecureURL,
			PublicID: result.PublicID,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the post, its images, and its category links as one
// atomic unit; any failure leaves no partial rows behind.
func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user.IsBanned {
		RenderError(c, http.StatusForbidden, "Your account is banned")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		RenderError(c, http.StatusBadRequest, "Title is required")
		return
	}

	status := models.PostPublished
	if c.PostForm("draft") == "1" {
		status = models.PostDraft
	}

	sources, err := h.collectImageSources(c)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read uploaded images")
		return
	}
	forumIDs := parseForumIDs(c.PostFormArray("forum_ids"))

	post := models.Post{
		UserID:  user.ID,
		Title:   title,
		Content: c.PostForm("content"),
		URL:     c.PostForm("url"),
		Status:  status,
	}

	tx := db.DB.Begin()
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		RenderError(c, http.StatusInternalServerError, "Could not create post")
		return
	}

	if err := h.uploadAndAttach(tx, post.ID, sources); err != nil {
		tx.Rollback()
		RenderError(c, http.StatusInternalServerError, "Could not store images")
		return
	}

	for _, forumID := range forumIDs {
		link := models.PostCategory{PostID: post.ID, ForumID: forumID}
		if err := tx.Create(&link).Error; err != nil {
			tx.Rollback()
			RenderError(c, http.StatusInternalServerError, "Could not tag post")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create post")
		return
	}

	invalidateHomeFeed()
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("Images").Preload("Categories").First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canEditPost(&post, user) {
		RenderError(c, http.StatusForbidden, "You cannot edit this post")
		return
	}

	var forums []models.Forum
	db.DB.Order("header ASC, order_by ASC, title ASC").Find(&forums)

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":  "Edit post",
		"Post":   post,
		"Forums": forums,
	})
}

// Edit updates text fields and fully replaces the category links.
// An empty title keeps the previous one. Publishing a draft resets
// created_at so it enters the feed as new.
func (h *PostHandler) Edit(c *gin.Context) {
	user := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canEditPost(&post, user) {
		RenderError(c, http.StatusForbidden, "You cannot edit this post")
		return
	}

	newStatus := models.PostPublished
	if c.PostForm("draft") == "1" {
		newStatus = models.PostDraft
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		post.Title = title
	}
	post.Content = c.PostForm("content")
	post.URL = c.PostForm("url")
	if post.Status == models.PostDraft && newStatus == models.PostPublished {
		post.CreatedAt = time.Now()
	}
	post.Status = newStatus

	forumValues := c.PostFormArray("forum_ids")

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		if len(forumValues) == 0 {
			return nil
		}
		// Category links are replaced wholesale, not diffed.
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		for _, forumID := range parseForumIDs(forumValues) {
			link := models.PostCategory{PostID: post.ID, ForumID: forumID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Update failed")
		return
	}

	invalidateHomeFeed()
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// AddImages appends uploads up to the per-post cap. The recount and the
// inserts share one transaction.
func (h *PostHandler) AddImages(c *gin.Context) {
	user := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canEditPost(&post, user) {
		RenderError(c, http.StatusForbidden, "You cannot edit this post")
		return
	}

	sources, err := h.collectImageSources(c)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read uploaded images")
		return
	}
	if len(sources) == 0 {
		RenderError(c, http.StatusBadRequest, "No images selected")
		return
	}

	tx := db.DB.Begin()

	var existing int64
	tx.Model(&models.PostImage{}).Where("post_id = ?", post.ID).Count(&existing)

	keep := imageSlots(int(existing), len(sources))
	if keep == 0 {
		tx.Rollback()
		RenderError(c, http.StatusBadRequest,
			fmt.Sprintf("Limit reached: you already have %d images", models.MaxImagesPerPost))
		return
	}
	sources = sources[:keep]

	if err := h.uploadAndAttach(tx, post.ID, sources); err != nil {
		tx.Rollback()
		RenderError(c, http.StatusInternalServerError, "Could not store images")
		return
	}

	if err := tx.Commit().Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not store images")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// ReplaceImage uploads the replacement before touching the old asset,
// so a failed remote delete leaves an orphan rather than a broken post.
func (h *PostHandler) ReplaceImage(c *gin.Context) {
	user := currentUser(c)
	imageID := utils.StringToInt(c.Param("imageId"))

	var image models.PostImage
	if err := db.DB.First(&image, imageID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Image not found")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, image.PostID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !canEditPost(&post, user) {
		RenderError(c, http.StatusForbidden, "You cannot edit this post")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		RenderError(c, http.StatusBadRequest, "No image provided")
		return
	}
	file, err := header.Open()
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read image")
		return
	}
	raw, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Could not read image")
		return
	}

	compressed, err := services.CompressImage(raw)
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Unsupported image format")
		return
	}

	result, err := h.media.Upload(compressed, header.Filename)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to replace image")
		return
	}

	oldPublicID := image.PublicID
	image.ImageURL = result.SecureURL
	image.PublicID = result.PublicID
	if err := db.DB.Save(&image).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to replace image")
		return
	}

	if oldPublicID != "" {
		if err := h.media.Destroy(oldPublicID); err != nil {
			// Orphaned remote asset; nothing user-visible broke.
			fmt.Printf("failed to destroy old media asset %s: %v\n", oldPublicID, err)
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// Delete soft-removes a post. Ownership is enforced in the UPDATE's
// WHERE clause.
func (h *PostHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	postID := utils.StringToInt(c.Param("id"))

	result := db.DB.Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, user.ID).
		Update("status", models.PostRemoved)
	if result.Error != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete post")
		return
	}
	if result.RowsAffected == 0 {
		RenderError(c, http.StatusForbidden, "You don't have permission to delete this post")
		return
	}

	invalidateHomeFeed()
	c.Redirect(http.StatusFound, "/")
}
