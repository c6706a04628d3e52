package utils

// Find 按ID（即下标）取出数据
// 功能：ids为空时返回全部数据，越界的ID记录到失败列表中
// 参数：data-按ID排列的数据，ids-需要的ID
// 返回：okData-找到的数据（按ids顺序），failedIDs-越界的ID
func Find[T any](data []T, ids []int32) (okData []T, failedIDs []int32) {
	if len(ids) == 0 {
		return data, nil
	}
	okData = make([]T, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && int(id) < len(data) {
			okData = append(okData, data[id])
		} else {
			failedIDs = append(failedIDs, id)
		}
	}
	return
}
