package service

import (
	"context"

	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/internal/app/repository"
	apperrors "github.com/ikkim/camping-backend/internal/errors"
	"github.com/ikkim/camping-backend/internal/pagination"
)

// CommentService 댓글 서비스 인터페이스
type CommentService interface {
	CreateComment(ctx context.Context, boardID uint, email string, req *model.CreateCommentRequest) (*model.CommentItem, error)
	DeleteComment(ctx context.Context, commentID uint, email string) error
	ListComments(ctx context.Context, boardID uint, page, size int) (pagination.Page[model.CommentItem], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	boardRepo   repository.BoardRepository
	memberRepo  repository.MemberRepository
}

// NewCommentService 댓글 서비스 생성자
func NewCommentService(commentRepo repository.CommentRepository, boardRepo repository.BoardRepository, memberRepo repository.MemberRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		boardRepo:   boardRepo,
		memberRepo:  memberRepo,
	}
}

// CreateComment 댓글 작성. 게시글 댓글 수도 함께 증가한다.
func (s *commentService) CreateComment(ctx context.Context, boardID uint, email string, req *model.CreateCommentRequest) (*model.CommentItem, error) {
	member, err := findMemberByEmail(ctx, s.memberRepo, "create_comment", email)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		BoardID:  boardID,
		MemberID: member.ID,
		Content:  req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// 게시글이 없으면 카운터 갱신이 0행이 되어 RecordNotFound
		return nil, storageError(err, "create_comment", apperrors.ResourceBoard, boardID)
	}

	item := comment.ToItem()
	return &item, nil
}

// DeleteComment 작성자만 삭제 가능
func (s *commentService) DeleteComment(ctx context.Context, commentID uint, email string) error {
	member, err := findMemberByEmail(ctx, s.memberRepo, "delete_comment", email)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return storageError(err, "delete_comment", apperrors.ResourceComment, commentID)
	}
	if comment.MemberID != member.ID {
		return ownerOnly("delete", apperrors.ResourceComment, commentID)
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return storageError(err, "delete_comment", apperrors.ResourceComment, commentID)
	}
	return nil
}

// ListComments 게시글의 댓글 목록 (작성순)
func (s *commentService) ListComments(ctx context.Context, boardID uint, page, size int) (pagination.Page[model.CommentItem], error) {
	req, err := pagination.New(page, size)
	if err != nil {
		return pagination.Page[model.CommentItem]{}, err
	}

	if _, err := s.boardRepo.FindByID(ctx, boardID, false); err != nil {
		return pagination.Page[model.CommentItem]{}, storageError(err, "list_comments", apperrors.ResourceBoard, boardID)
	}

	comments, total, err := s.commentRepo.ListByBoard(ctx, boardID, req.Offset(), req.Limit())
	if err != nil {
		return pagination.Page[model.CommentItem]{}, storageError(err, "list_comments", apperrors.ResourceComment, boardID)
	}

	items := make([]model.CommentItem, 0, len(comments))
	for i := range comments {
		items = append(items, comments[i].ToItem())
	}
	return pagination.NewPage(items, total, req), nil
}
