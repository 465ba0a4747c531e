package service

import (
	"errors"

	"remo-go/internal/model"
)

var (
	ErrGuestCommentProtected  = errors.New("guest comments cannot be deleted")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotCommentOwner        = errors.New("not the owner")
)

// authorizeDelete 评论删除授权，纯判定不产生副作用
// 游客评论没有归属者，任何请求方都不可删除；其余情况只有作者本人可删
func authorizeDelete(comment *model.Comment, requester model.Identity) error {
	if comment.IsGuest() {
		return ErrGuestCommentProtected
	}

	requesterID, ok := requester.UserID()
	if !ok {
		return ErrAuthenticationRequired
	}

	if requesterID != *comment.AuthorID {
		return ErrNotCommentOwner
	}

	return nil
}
