package core

// UserProfile 是读侧的用户画像：显式兴趣标签 + 组织归属。
// 由 Storage 协作方负责维护与校验，引擎只读，不回写。
type UserProfile struct {
	UserID string

	// Department 院系归属，可为空（表示无组织信号）
	Department string

	// Interests 显式声明的兴趣标签（去重，顺序不敏感）
	Interests []string
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		Interests: make([]string, 0),
	}
}

// AddInterest 追加兴趣标签，重复标签忽略。
func (p *UserProfile) AddInterest(tag string) {
	if tag == "" {
		return
	}
	for _, t := range p.Interests {
		if t == tag {
			return
		}
	}
	p.Interests = append(p.Interests, tag)
}

// HasInterest 检查是否声明过某个兴趣。
func (p *UserProfile) HasInterest(tag string) bool {
	for _, t := range p.Interests {
		if t == tag {
			return true
		}
	}
	return false
}
