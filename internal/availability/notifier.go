package availability

import (
	"context"

	"github.com/nao1215/schedulehub/pkg/change"
	"github.com/nao1215/schedulehub/pkg/httpclient"
)

// ServiceNotifier はnotificationサービスの内部APIに変更通知を記録するNotifier実装。
type ServiceNotifier struct {
	// client はnotificationサービスへのHTTPクライアント。
	client *httpclient.Client
}

// NewServiceNotifier は新しいServiceNotifierを生成する。
// baseURLにはnotificationサービスのベースURLを指定する。
func NewServiceNotifier(baseURL string) *ServiceNotifier {
	return &ServiceNotifier{client: httpclient.New(baseURL)}
}

// Record は変更通知をnotificationサービスにPOSTする。
// ユーザーIDはリクエストボディに加えてX-User-IDヘッダーでも伝播する。
func (n *ServiceNotifier) Record(ctx context.Context, userID string, kind change.Kind, message string) error {
	req := change.RecordRequest{
		UserID:  userID,
		Kind:    string(kind),
		Message: message,
	}

	var resp map[string]any
	return n.client.PostJSON(httpclient.WithUserID(ctx, userID), "/api/v1/internal/notifications", req, &resp)
}
