package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"vibematch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memoryStore is an in-memory Store used by the service tests. It
// understands the expression shapes the services actually issue:
// equality key conditions, "SET a = :v" lists with "field + :v" adds,
// and attribute_not_exists / equality condition expressions.
type memoryStore struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
}

var tableKeys = map[string][]string{
	models.VibeProfilesTable:  {"userId"},
	models.VibeMatchesTable:   {"matchId"},
	models.MatchChatTable:     {"matchId", "createdAt"},
	models.SafetyReportsTable: {"reportId"},
	models.PrismPointsTable:   {"matchId"},
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tables: map[string][]map[string]types.AttributeValue{}}
}

func avEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

func (m *memoryStore) findIndex(tableName string, key map[string]types.AttributeValue) int {
	for i, item := range m.tables[tableName] {
		matched := true
		for k, v := range key {
			if existing, ok := item[k]; !ok || !avEqual(existing, v) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

func (m *memoryStore) keyOf(tableName string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{}
	for _, k := range tableKeys[tableName] {
		key[k] = item[k]
	}
	return key
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (m *memoryStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.findIndex(tableName, key)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	return copyItem(m.tables[tableName][idx]), nil
}

func (m *memoryStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx := m.findIndex(tableName, m.keyOf(tableName, marshaled)); idx >= 0 {
		m.tables[tableName][idx] = marshaled
		return nil
	}
	m.tables[tableName] = append(m.tables[tableName], marshaled)
	return nil
}

func (m *memoryStore) PutItemConditional(ctx context.Context, tableName string, item interface{}, conditionExpression string) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !strings.HasPrefix(conditionExpression, "attribute_not_exists(") {
		return fmt.Errorf("memoryStore: unsupported condition %q", conditionExpression)
	}
	if m.findIndex(tableName, m.keyOf(tableName, marshaled)) >= 0 {
		return ErrConditionFailed
	}
	m.tables[tableName] = append(m.tables[tableName], marshaled)
	return nil
}

func (m *memoryStore) UpdateItem(ctx context.Context, tableName, updateExpression string, key map[string]types.AttributeValue,
	values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	return m.UpdateItemConditional(ctx, tableName, updateExpression, key, values, names, "")
}

func (m *memoryStore) UpdateItemConditional(ctx context.Context, tableName, updateExpression string, key map[string]types.AttributeValue,
	values map[string]types.AttributeValue, names map[string]string, conditionExpression string) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.findIndex(tableName, key)
	var item map[string]types.AttributeValue
	if idx >= 0 {
		item = m.tables[tableName][idx]
	} else {
		item = copyItem(key)
	}

	if conditionExpression != "" {
		parts := strings.SplitN(conditionExpression, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("memoryStore: unsupported condition %q", conditionExpression)
		}
		field := resolveName(strings.TrimSpace(parts[0]), names)
		want := values[strings.TrimSpace(parts[1])]
		have, ok := item[field]
		if !ok || !avEqual(have, want) {
			return nil, ErrConditionFailed
		}
	}

	if !strings.HasPrefix(updateExpression, "SET ") {
		return nil, fmt.Errorf("memoryStore: unsupported update %q", updateExpression)
	}
	for _, clause := range strings.Split(strings.TrimPrefix(updateExpression, "SET "), ", ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("memoryStore: unsupported clause %q", clause)
		}
		field := resolveName(strings.TrimSpace(parts[0]), names)
		expr := strings.TrimSpace(parts[1])
		if strings.Contains(expr, " + ") {
			addParts := strings.SplitN(expr, " + ", 2)
			current := 0
			if cur, ok := item[strings.TrimSpace(addParts[0])].(*types.AttributeValueMemberN); ok {
				current, _ = strconv.Atoi(cur.Value)
			}
			inc := 0
			if v, ok := values[strings.TrimSpace(addParts[1])].(*types.AttributeValueMemberN); ok {
				inc, _ = strconv.Atoi(v.Value)
			}
			item[field] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + inc)}
			continue
		}
		item[field] = values[expr]
	}

	if idx >= 0 {
		m.tables[tableName][idx] = item
	} else {
		m.tables[tableName] = append(m.tables[tableName], item)
	}
	return copyItem(item), nil
}

func resolveName(field string, names map[string]string) string {
	if strings.HasPrefix(field, "#") {
		if resolved, ok := names[field]; ok {
			return resolved
		}
	}
	return field
}

func (m *memoryStore) queryEquality(tableName, keyConditionExpression string,
	values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	parts := strings.SplitN(keyConditionExpression, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("memoryStore: unsupported key condition %q", keyConditionExpression)
	}
	field := resolveName(strings.TrimSpace(parts[0]), names)
	want := values[strings.TrimSpace(parts[1])]

	var out []map[string]types.AttributeValue
	for _, item := range m.tables[tableName] {
		if have, ok := item[field]; ok && avEqual(have, want) {
			out = append(out, copyItem(item))
		}
	}
	return out, nil
}

func (m *memoryStore) QueryItems(ctx context.Context, tableName, keyConditionExpression string,
	values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryEquality(tableName, keyConditionExpression, values, names)
}

func (m *memoryStore) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string,
	values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryEquality(tableName, keyConditionExpression, values, names)
}

func (m *memoryStore) QueryItemsWithOptions(ctx context.Context, tableName, keyConditionExpression string,
	values map[string]types.AttributeValue, names map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.queryEquality(tableName, keyConditionExpression, values, names)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i]["createdAt"].(*types.AttributeValueMemberS)
		b, _ := items[j]["createdAt"].(*types.AttributeValueMemberS)
		if a == nil || b == nil {
			return false
		}
		if latestFirst {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	})
	return items, nil
}

func (m *memoryStore) ScanWithFilter(ctx context.Context, tableName string,
	filterFunc func(map[string]types.AttributeValue) bool, result interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var filtered []map[string]types.AttributeValue
	for _, item := range m.tables[tableName] {
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, copyItem(item))
		}
	}
	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

// stubAnalyzer is a canned TextAnalyzer for tests.
type stubAnalyzer struct {
	score int
	flags []string
	err   error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, text string) (*ModerationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ModerationResult{Sentiment: "neutral", Score: s.score, Flags: s.flags}, nil
}
